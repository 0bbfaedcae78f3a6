package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/armrig/internal/orient"
	"github.com/san-kum/armrig/internal/script"
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

// RunMetadata describes how a trace was produced.
type RunMetadata struct {
	ID         string             `json:"id"`
	Scenario   string             `json:"scenario"`
	Timestamp  time.Time          `json:"timestamp"`
	Rotator    string             `json:"rotator"`
	Constraint string             `json:"constraint"`
	Policy     string             `json:"press_policy"`
	Smoothing  float64            `json:"smoothing"`
	Ticks      int                `json:"ticks"`
	Metrics    map[string]float64 `json:"metrics"`
}

func (s *Store) Save(meta RunMetadata, result *script.Result) (string, error) {
	name := meta.Scenario
	if name == "" {
		name = "run"
	}
	runID := fmt.Sprintf("%s_%d", name, time.Now().Unix())
	for n := 1; ; n++ {
		if _, err := os.Stat(filepath.Join(s.baseDir, runID)); os.IsNotExist(err) {
			break
		}
		runID = fmt.Sprintf("%s_%d_%d", name, time.Now().Unix(), n)
	}
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta.ID = runID
	meta.Timestamp = time.Now()
	meta.Ticks = len(result.Samples)
	meta.Metrics = result.Metrics

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

	csvFile, err := os.Create(filepath.Join(runDir, "ticks.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	if err := writeTicks(csvFile, result); err != nil {
		return "", err
	}
	return runID, nil
}

func writeTicks(out io.Writer, result *script.Result) error {
	w := csv.NewWriter(out)
	defer w.Flush()

	if len(result.Samples) == 0 {
		return nil
	}

	header := []string{"tick", "active"}
	for _, j := range result.Samples[0].Joints {
		id := string(j.ID)
		header = append(header,
			id+"_cw", id+"_cx", id+"_cy", id+"_cz",
			id+"_tw", id+"_tx", id+"_ty", id+"_tz",
			id+"_swing", id+"_error")
	}
	if err := w.Write(header); err != nil {
		return err
	}

	f := func(v float64) string { return strconv.FormatFloat(v, 'f', 9, 64) }
	for _, s := range result.Samples {
		row := []string{strconv.Itoa(s.Tick), string(s.Active)}
		for _, j := range s.Joints {
			c, t := j.Current, j.Target
			row = append(row,
				f(c.W), f(c.V[0]), f(c.V[1]), f(c.V[2]),
				f(t.W), f(t.V[0]), f(t.V[1]), f(t.V[2]),
				f(orient.Degrees(j.Swing)), f(orient.Degrees(orient.Angle(c, t))))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// List returns stored runs, oldest first.
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

	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("run %s: %w", runID, err)
	}
	return &meta, nil
}

// Series is the numeric columns of a trace keyed by header name.
type Series struct {
	Columns []string
	Values  map[string][]float64
}

// LoadSeries reads ticks.csv back as columns. Non-numeric columns such as
// the active joint are skipped.
func (s *Store) LoadSeries(runID string) (*Series, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "ticks.csv"))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("run %s: %w", runID, err)
	}

	series := &Series{Values: make(map[string][]float64)}
	if len(records) < 2 {
		return series, nil
	}

	header := records[0]
	for i, name := range header {
		if name == "active" {
			continue
		}
		col := make([]float64, 0, len(records)-1)
		for _, rec := range records[1:] {
			if i >= len(rec) {
				continue
			}
			v, err := strconv.ParseFloat(rec[i], 64)
			if err != nil {
				continue
			}
			col = append(col, v)
		}
		series.Columns = append(series.Columns, name)
		series.Values[name] = col
	}
	return series, nil
}

type ExportData struct {
	Meta    RunMetadata          `json:"meta"`
	Columns []string             `json:"columns"`
	Values  map[string][]float64 `json:"values"`
}

// Export writes a stored run as a single JSON document.
func (s *Store) Export(w io.Writer, runID string) error {
	meta, err := s.Load(runID)
	if err != nil {
		return err
	}
	series, err := s.LoadSeries(runID)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(ExportData{Meta: *meta, Columns: series.Columns, Values: series.Values})
}
