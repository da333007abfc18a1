package kmcluster

import (
	"bufio"
	"fmt"
	"io"

	"github.com/hupe1980/kmcluster/codec"
)

// ClusterSummary describes one cluster after a run.
type ClusterSummary struct {
	Index    int     `json:"index"`
	Centroid Point   `json:"centroid"`
	Spread   float64 `json:"spread"`
	Members  []int   `json:"members"`
}

// Result is the outcome of a clustering run.
type Result struct {
	RunID    string           `json:"run_id"`
	Clusters []ClusterSummary `json:"clusters"`
	// Assignments maps every point index to the cluster that owns it.
	Assignments []int   `json:"assignments"`
	TotalSpread float64 `json:"total_spread"`
	Passes      int     `json:"passes"`
	Converged   bool    `json:"converged"`
}

// Centroids returns the centroid of every cluster in index order.
func (r *Result) Centroids() []Point {
	out := make([]Point, len(r.Clusters))
	for i := range r.Clusters {
		out[i] = r.Clusters[i].Centroid.Clone()
	}
	return out
}

func (e *Engine) buildResult(runID string, passes int, converged bool) (*Result, error) {
	res := &Result{
		RunID:       runID,
		Clusters:    make([]ClusterSummary, len(e.clusters)),
		Assignments: make([]int, len(e.records)),
		Passes:      passes,
		Converged:   converged,
	}
	for i, c := range e.clusters {
		spread, err := c.Spread(e.points)
		if err != nil {
			return nil, err
		}
		res.Clusters[i] = ClusterSummary{
			Index:    i,
			Centroid: c.Centroid(),
			Spread:   spread,
			Members:  c.Members(),
		}
		res.TotalSpread += spread
	}
	for i := range e.records {
		res.Assignments[i] = e.records[i].ClusterID
	}
	return res, nil
}

// Result returns the result of the last successful run.
func (e *Engine) Result() (*Result, error) {
	if !e.clustered || e.result == nil {
		return nil, ErrNotClustered
	}
	return e.result, nil
}

// Centroids returns the cluster centroids of the last run.
func (e *Engine) Centroids() ([]Point, error) {
	if !e.clustered {
		return nil, ErrNotClustered
	}
	out := make([]Point, len(e.clusters))
	for i, c := range e.clusters {
		out[i] = c.Centroid()
	}
	return out, nil
}

// Spread returns the mean member-to-centroid distance of cluster i.
func (e *Engine) Spread(i int) (float64, error) {
	if !e.clustered {
		return 0, ErrNotClustered
	}
	if i < 0 || i >= len(e.clusters) {
		return 0, fmt.Errorf("%w: %d", ErrClusterOutOfRange, i)
	}
	return e.clusters[i].Spread(e.points)
}

// TotalSpread returns the sum of every cluster's spread.
func (e *Engine) TotalSpread() (float64, error) {
	if !e.clustered {
		return 0, ErrNotClustered
	}
	var total float64
	for _, c := range e.clusters {
		s, err := c.Spread(e.points)
		if err != nil {
			return 0, err
		}
		total += s
	}
	return total, nil
}

// Assignments re-derives the nearest cluster of every point from the final
// centroids. It is computed independently of the assignment records, so
// after a non-convergent run the two may disagree.
func (e *Engine) Assignments() ([]int, error) {
	if !e.clustered {
		return nil, ErrNotClustered
	}
	out := make([]int, len(e.points))
	for i := range e.points {
		c, _, err := e.nearest(e.points[i])
		if err != nil {
			return nil, err
		}
		out[i] = c
	}
	return out, nil
}

// WriteClusterSets writes one block per cluster: a "cluster <i> spread <s>"
// header followed by the serialized points nearest to that cluster, then a
// blank line. A final "total spread: <t>" line, with six significant
// digits, closes the report.
func WriteClusterSets(w io.Writer, e *Engine) error {
	assignments, err := e.Assignments()
	if err != nil {
		return err
	}

	bw := bufio.NewWriter(w)
	var total float64
	for i, c := range e.clusters {
		spread, err := c.Spread(e.points)
		if err != nil {
			return err
		}
		total += spread
		fmt.Fprintf(bw, "cluster %d spread %f\n", i, spread)
		for p, owner := range assignments {
			if owner == i {
				bw.WriteString(e.points[p].String())
				bw.WriteByte('\n')
			}
		}
		bw.WriteByte('\n')
	}
	fmt.Fprintf(bw, "total spread: %.6g\n", total)
	return bw.Flush()
}

// WriteCentroids writes one serialized centroid per line.
func WriteCentroids(w io.Writer, e *Engine) error {
	centroids, err := e.Centroids()
	if err != nil {
		return err
	}
	bw := bufio.NewWriter(w)
	for _, c := range centroids {
		bw.WriteString(c.String())
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

// WriteResult encodes the last result with c. A nil codec selects
// codec.Default.
func WriteResult(w io.Writer, e *Engine, c codec.Codec) error {
	res, err := e.Result()
	if err != nil {
		return err
	}
	if c == nil {
		c = codec.Default
	}
	b, err := c.Marshal(res)
	if err != nil {
		return fmt.Errorf("codec %s marshal failed: %w", c.Name(), err)
	}
	if _, err := w.Write(b); err != nil {
		return err
	}
	_, err = io.WriteString(w, "\n")
	return err
}
