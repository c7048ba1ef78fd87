package sample

import (
	"errors"
	"math"
	"testing"

	"gonum.org/v1/gonum/stat"

	"github.com/san-kum/forestlab/internal/dynamo"
)

func testMarginals() []Marginal {
	return []Marginal{
		{Name: "r", Mean: 0.01, StdDev: 0.001},
		{Name: "g", Mean: 2, StdDev: 0.2},
		{Name: "K", Mean: 250, StdDev: 25},
		{Name: "threshold", Mean: 50, StdDev: 5},
	}
}

func TestSamplerReproducible(t *testing.T) {
	s1, err := New(testMarginals(), 42)
	if err != nil {
		t.Fatal(err)
	}
	s2, err := New(testMarginals(), 42)
	if err != nil {
		t.Fatal(err)
	}

	e1, _ := s1.Draw(100)
	e2, _ := s2.Draw(100)

	for j := range e1.Rows {
		for i := range e1.Rows[j] {
			if e1.Rows[j][i] != e2.Rows[j][i] {
				t.Fatalf("same seed produced different draws at (%d,%d)", j, i)
			}
		}
	}
}

func TestSamplerDrawsAreIndependent(t *testing.T) {
	s, err := New(testMarginals(), 7)
	if err != nil {
		t.Fatal(err)
	}

	a, _ := s.Draw(50)
	b, _ := s.Draw(50)

	same := 0
	for j := range a.Rows {
		if a.Rows[j][0] == b.Rows[j][0] {
			same++
		}
	}
	if same == len(a.Rows) {
		t.Error("second draw is a copy of the first, not an independent ensemble")
	}
}

func TestSamplerMoments(t *testing.T) {
	s, err := New(testMarginals(), 1)
	if err != nil {
		t.Fatal(err)
	}

	ens, err := s.Draw(20000)
	if err != nil {
		t.Fatal(err)
	}

	for i, m := range testMarginals() {
		col := ens.Column(i)
		mean := stat.Mean(col, nil)
		sd := stat.StdDev(col, nil)

		if math.Abs(mean-m.Mean) > 5*m.StdDev/math.Sqrt(20000) {
			t.Errorf("%s: sample mean %g too far from %g", m.Name, mean, m.Mean)
		}
		if math.Abs(sd-m.StdDev)/m.StdDev > 0.05 {
			t.Errorf("%s: sample std %g too far from %g", m.Name, sd, m.StdDev)
		}
	}
}

func TestSamplerNoTruncation(t *testing.T) {
	// wide marginal: negative draws must pass through
	s, err := New([]Marginal{{Name: "x", Mean: 0.1, StdDev: 10}}, 3)
	if err != nil {
		t.Fatal(err)
	}

	ens, _ := s.Draw(1000)
	negative := 0
	for _, row := range ens.Rows {
		if row[0] < 0 {
			negative++
		}
	}
	if negative == 0 {
		t.Error("expected negative draws from a wide normal, got none")
	}
}

func TestSamplerRejectsBadInput(t *testing.T) {
	if _, err := New(nil, 1); !errors.Is(err, dynamo.ErrInvalidParameter) {
		t.Errorf("expected invalid parameter for empty marginals, got %v", err)
	}
	if _, err := New([]Marginal{{Name: "x", Mean: 1, StdDev: -1}}, 1); !errors.Is(err, dynamo.ErrInvalidParameter) {
		t.Errorf("expected invalid parameter for negative std, got %v", err)
	}

	s, _ := New(testMarginals(), 1)
	if _, err := s.Draw(0); !errors.Is(err, dynamo.ErrInvalidParameter) {
		t.Errorf("expected invalid parameter for n=0, got %v", err)
	}
}
