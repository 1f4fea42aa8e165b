package ellipticmath

import (
	"math"
	"testing"
)

func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func TestLandenConvergence(t *testing.T) {
	v := Landen(0.5, 1e-15)
	if len(v) == 0 {
		t.Fatal("Landen returned empty sequence")
	}

	if last := v[len(v)-1]; last > 1e-15 {
		t.Fatalf("Landen did not converge: last value = %e", last)
	}

	for i := 1; i < len(v); i++ {
		if v[i] >= v[i-1] {
			t.Fatalf("Landen not monotonically decreasing at index %d: %e >= %e", i, v[i], v[i-1])
		}
	}
}

func TestLandenLimits(t *testing.T) {
	if v := Landen(0, Tol); len(v) != 1 || v[0] != 0 {
		t.Fatalf("Landen(0) = %v, expected [0]", v)
	}

	if v := Landen(1, Tol); len(v) != 1 || v[0] != 1 {
		t.Fatalf("Landen(1) = %v, expected [1]", v)
	}
}

func TestEllipKKnownValues(t *testing.T) {
	// K(0) = pi/2.
	K, _ := EllipK(0, Tol)
	if !almostEqual(K, math.Pi/2, 1e-14) {
		t.Fatalf("K(0) = %v, want pi/2", K)
	}

	// K(1/sqrt2) = Gamma(1/4)^2 / (4 sqrt(pi)).
	g := math.Gamma(0.25)
	want := g * g / (4 * math.Sqrt(math.Pi))
	K, Kp := EllipK(1/math.Sqrt2, Tol)
	if !almostEqual(K, want, 1e-12) || !almostEqual(Kp, want, 1e-12) {
		t.Fatalf("K(1/sqrt2) = (%v, %v), want %v twice", K, Kp, want)
	}
}

func TestJacobiIdentities(t *testing.T) {
	const k = 0.7

	for _, u := range []float64{0, 0.3, 0.9, 1.4} {
		sn, cn, dn, ok := Jacobi(u, k, Tol)
		if !ok {
			t.Fatalf("Jacobi(%v) failed", u)
		}

		if !almostEqual(sn*sn+cn*cn, 1, 1e-10) {
			t.Fatalf("u=%v: sn^2+cn^2 = %v", u, sn*sn+cn*cn)
		}

		if !almostEqual(dn*dn+k*k*sn*sn, 1, 1e-10) {
			t.Fatalf("u=%v: dn^2+k^2 sn^2 = %v", u, dn*dn+k*k*sn*sn)
		}
	}
}

func TestJacobiZeroModulusIsTrig(t *testing.T) {
	sn, cn, dn, ok := Jacobi(0.8, 0, Tol)
	if !ok {
		t.Fatal("Jacobi failed")
	}

	if !almostEqual(sn, math.Sin(0.8), 1e-12) || !almostEqual(cn, math.Cos(0.8), 1e-12) || dn != 1 {
		t.Fatalf("k=0: got sn=%v cn=%v dn=%v", sn, cn, dn)
	}
}

func TestJacobiRejectsBadModulus(t *testing.T) {
	if _, _, _, ok := Jacobi(0.5, 1, Tol); ok {
		t.Fatal("expected failure for k=1")
	}
}

func TestArcSC1ZeroModulus(t *testing.T) {
	// With m = 0, sc(u, 1) degenerates to sinh: asinh inverse.
	got := ArcSC1(0.5, 0)
	if !almostEqual(got, math.Asinh(0.5), 1e-9) {
		t.Fatalf("ArcSC1(0.5, 0) = %v, want %v", got, math.Asinh(0.5))
	}
}

func TestDegreeInRange(t *testing.T) {
	for _, n := range []int{2, 4} {
		m := Degree(n, 1e-3, Tol)
		if !(m > 0 && m < 1) {
			t.Fatalf("Degree(%d) = %v, want (0,1)", n, m)
		}
	}

	if !math.IsNaN(Degree(0, 0.5, Tol)) {
		t.Fatal("expected NaN for order 0")
	}
}
