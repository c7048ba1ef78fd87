package storage

import (
	"testing"

	"github.com/san-kum/forestlab/internal/sobol"
)

func testResult() *sobol.Result {
	return &sobol.Result{
		Parameters: []string{"r", "g", "K", "threshold"},
		Indices: []sobol.Indices{
			{FirstOrder: 0.34, TotalEffect: 0.36},
			{FirstOrder: 0.22, TotalEffect: 0.24},
			{FirstOrder: 0.36, TotalEffect: 0.38},
			{FirstOrder: 0.10, TotalEffect: 0.11},
		},
		Variance: 210.5,
	}
}

func TestSaveAndLoad(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatal(err)
	}

	outputs := []float64{180.1, 190.2, 170.3}
	runID, err := st.Save("growth", "max", "rk45", 42, 1000, 0, testResult(), outputs)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	meta, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if meta.Model != "growth" || meta.Metric != "max" || meta.Seed != 42 || meta.N != 1000 {
		t.Errorf("metadata mismatch: %+v", meta)
	}
	if meta.Result == nil || len(meta.Result.Indices) != 4 {
		t.Fatal("indices not persisted")
	}
	if meta.Result.Indices[0].FirstOrder != 0.34 {
		t.Errorf("index value lost: %g", meta.Result.Indices[0].FirstOrder)
	}
}

func TestLoadOutputs(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatal(err)
	}

	outputs := []float64{1.5, 2.25, -0.75}
	runID, err := st.Save("growth", "max", "rk45", 1, 10, 0, testResult(), outputs)
	if err != nil {
		t.Fatal(err)
	}

	loaded, err := st.LoadOutputs(runID)
	if err != nil {
		t.Fatalf("load outputs failed: %v", err)
	}
	if len(loaded) != len(outputs) {
		t.Fatalf("expected %d outputs, got %d", len(outputs), len(loaded))
	}
	for i := range outputs {
		if loaded[i] != outputs[i] {
			t.Errorf("output %d: %g vs %g", i, loaded[i], outputs[i])
		}
	}
}

func TestList(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatal(err)
	}

	runs, err := st.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 0 {
		t.Errorf("expected empty store, got %d runs", len(runs))
	}

	if _, err := st.Save("growth", "max", "rk45", 1, 10, 0, testResult(), []float64{1}); err != nil {
		t.Fatal(err)
	}

	runs, err = st.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 1 {
		t.Errorf("expected 1 run, got %d", len(runs))
	}
}

func TestListMissingDir(t *testing.T) {
	st := New("/nonexistent/forestlab-test")
	runs, err := st.List()
	if err != nil {
		t.Fatalf("expected no error for missing base dir, got %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected no runs, got %d", len(runs))
	}
}
