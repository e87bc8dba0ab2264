package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/san-kum/simpson/internal/analysis"
)

const (
	metadataFile    = "metadata.json"
	convergenceFile = "convergence.csv"
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

// Float is a float64 that survives JSON. Finite values encode as numbers;
// NaN and the infinities, which a quadrature may legitimately return,
// encode as the strings "NaN", "+Inf" and "-Inf".
type Float float64

func (f Float) MarshalJSON() ([]byte, error) {
	v := float64(f)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return json.Marshal(strconv.FormatFloat(v, 'g', -1, 64))
	}
	return json.Marshal(v)
}

func (f *Float) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return fmt.Errorf("storage: invalid float %q: %w", s, err)
		}
		*f = Float(v)
		return nil
	}

	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*f = Float(v)
	return nil
}

type RunMetadata struct {
	ID        string             `json:"id"`
	Integrand string             `json:"integrand"`
	Params    map[string]float64 `json:"params,omitempty"`
	Timestamp time.Time          `json:"timestamp"`
	A         float64            `json:"a"`
	B         float64            `json:"b"`
	N         int                `json:"n"`
	Result    Float              `json:"result"`
	// Exact and AbsError are only set when the integrand has a closed form.
	Exact    *Float        `json:"exact,omitempty"`
	AbsError *Float        `json:"abs_error,omitempty"`
	Elapsed  time.Duration `json:"elapsed_ns"`
}

// Run is the input to Save.
type Run struct {
	Integrand string
	Params    map[string]float64
	A, B      float64
	N         int
	Result    float64
	Exact     *float64
	Elapsed   time.Duration
}

func newRunID(integrand string) string {
	return fmt.Sprintf("%s_%s", integrand, uuid.NewString()[:8])
}

// Save writes the run's metadata under a new run id and returns it. On
// failure the run directory is removed.
func (s *Store) Save(run Run) (runID string, err error) {
	runID = newRunID(run.Integrand)
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}
	defer func() {
		if err != nil {
			os.RemoveAll(runDir)
			runID = ""
		}
	}()

	meta := RunMetadata{
		ID:        runID,
		Integrand: run.Integrand,
		Params:    run.Params,
		Timestamp: time.Now(),
		A:         run.A,
		B:         run.B,
		N:         run.N,
		Result:    Float(run.Result),
		Elapsed:   run.Elapsed,
	}
	if run.Exact != nil {
		exact := Float(*run.Exact)
		absErr := Float(math.Abs(run.Result - *run.Exact))
		meta.Exact = &exact
		meta.AbsError = &absErr
	}

	data, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(filepath.Join(runDir, metadataFile), append(data, '\n'), 0644); err != nil {
		return "", err
	}

	return runID, nil
}

// SaveConvergence writes a convergence table next to an existing run.
func (s *Store) SaveConvergence(runID string, levels []analysis.Level) (err error) {
	csvFile, err := os.Create(filepath.Join(s.baseDir, runID, convergenceFile))
	if err != nil {
		return err
	}
	defer func() {
		if cerr := csvFile.Close(); err == nil {
			err = cerr
		}
	}()

	w := csv.NewWriter(csvFile)

	if err := w.Write([]string{"n", "value", "abs_error", "ratio", "order"}); err != nil {
		return err
	}

	for _, l := range levels {
		row := []string{
			strconv.Itoa(l.N),
			strconv.FormatFloat(l.Value, 'g', -1, 64),
			strconv.FormatFloat(l.AbsError, 'g', -1, 64),
			strconv.FormatFloat(l.Ratio, 'g', -1, 64),
			strconv.FormatFloat(l.Order, 'g', -1, 64),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

// List returns all stored runs, oldest first. Directories without readable
// metadata are skipped.
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

		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}

		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Timestamp.Before(runs[j].Timestamp)
	})

	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

// LoadConvergence reads a run's convergence table. A run saved without one
// yields an empty table.
func (s *Store) LoadConvergence(runID string) ([]analysis.Level, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, convergenceFile))
	if err != nil {
		if os.IsNotExist(err) {
			return []analysis.Level{}, nil
		}
		return nil, err
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, err
	}

	if len(records) < 2 {
		return []analysis.Level{}, nil
	}

	levels := make([]analysis.Level, 0, len(records)-1)
	for i, record := range records[1:] {
		if len(record) != 5 {
			return nil, fmt.Errorf("%s line %d: expected 5 fields, got %d", convergenceFile, i+2, len(record))
		}

		n, err := strconv.Atoi(record[0])
		if err != nil {
			return nil, fmt.Errorf("%s line %d: %w", convergenceFile, i+2, err)
		}

		var vals [4]float64
		for j := range vals {
			vals[j], err = strconv.ParseFloat(record[j+1], 64)
			if err != nil {
				return nil, fmt.Errorf("%s line %d: %w", convergenceFile, i+2, err)
			}
		}

		levels = append(levels, analysis.Level{
			N:        n,
			Value:    vals[0],
			AbsError: vals[1],
			Ratio:    vals[2],
			Order:    vals[3],
		})
	}

	return levels, nil
}
