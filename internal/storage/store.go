package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/san-kum/forestlab/internal/sobol"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID         string        `json:"id"`
	Model      string        `json:"model"`
	Metric     string        `json:"metric"`
	Integrator string        `json:"integrator"`
	Timestamp  time.Time     `json:"timestamp"`
	Seed       uint64        `json:"seed"`
	N          int           `json:"n"`
	NBoot      int           `json:"nboot"`
	Result     *sobol.Result `json:"result"`
}

// Save writes one analysis run under its own directory: metadata plus
// indices as JSON, the raw output vector as CSV for downstream
// plotting, and the per-parameter indices as CSV.
func (s *Store) Save(model, metric, integrator string, seed uint64, n, nboot int, result *sobol.Result, outputs []float64) (string, error) {
	runID := fmt.Sprintf("%s_%s_%d", model, metric, time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:         runID,
		Model:      model,
		Metric:     metric,
		Integrator: integrator,
		Timestamp:  time.Now(),
		Seed:       seed,
		N:          n,
		NBoot:      nboot,
		Result:     result,
	}

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	if err := s.writeOutputs(filepath.Join(runDir, "outputs.csv"), outputs); err != nil {
		return "", err
	}
	if err := s.writeIndices(filepath.Join(runDir, "indices.csv"), result); err != nil {
		return "", err
	}

	return runID, nil
}

func (s *Store) writeOutputs(path string, outputs []float64) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	w := csv.NewWriter(file)
	defer w.Flush()

	if err := w.Write([]string{"row", "output"}); err != nil {
		return err
	}
	for i, v := range outputs {
		row := []string{strconv.Itoa(i), strconv.FormatFloat(v, 'f', 6, 64)}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) writeIndices(path string, result *sobol.Result) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	w := csv.NewWriter(file)
	defer w.Flush()

	if err := w.Write([]string{"parameter", "first_order", "total_effect", "s_lo", "s_hi", "t_lo", "t_hi"}); err != nil {
		return err
	}
	for i, name := range result.Parameters {
		idx := result.Indices[i]
		row := []string{
			name,
			strconv.FormatFloat(idx.FirstOrder, 'f', 6, 64),
			strconv.FormatFloat(idx.TotalEffect, 'f', 6, 64),
			strconv.FormatFloat(idx.FirstOrderLo, 'f', 6, 64),
			strconv.FormatFloat(idx.FirstOrderHi, 'f', 6, 64),
			strconv.FormatFloat(idx.TotalEffectLo, 'f', 6, 64),
			strconv.FormatFloat(idx.TotalEffectHi, 'f', 6, 64),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		metaPath := filepath.Join(s.baseDir, entry.Name(), "metadata.json")
		data, err := os.ReadFile(metaPath)
		if err != nil {
			continue
		}

		var meta RunMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			continue
		}

		runs = append(runs, meta)
	}

	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

func (s *Store) LoadOutputs(runID string) ([]float64, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "outputs.csv"))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	outputs := make([]float64, 0, len(records))
	for i := 1; i < len(records); i++ {
		if len(records[i]) < 2 {
			continue
		}
		v, err := strconv.ParseFloat(records[i][1], 64)
		if err != nil {
			continue
		}
		outputs = append(outputs, v)
	}
	return outputs, nil
}
