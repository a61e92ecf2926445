// Package mtxio reads the Matrix Market coordinate format into a sep.Graph,
// the collaborator-network file format named in spec §6.
package mtxio

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/gilchrisn/edgesep/pkg/sep"
)

// ReadGraph reads a Matrix Market "coordinate real symmetric" (or "pattern
// symmetric") file and conditions it into a sep.Graph via sep.Condition,
// which drops self-edges, symmetrizes, and defaults missing node weights to
// 1 (spec §4.7). Only the lower or upper triangle needs to be present in
// the file; mtxio does not assume which.
func ReadGraph(filename string) (*sep.Graph, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("could not open matrix market file %s: %w", filename, err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	var header []string
	pattern := false
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "%%MatrixMarket") {
			fields := strings.Fields(line)
			pattern = len(fields) >= 4 && strings.EqualFold(fields[3], "pattern")
			continue
		}
		if strings.HasPrefix(line, "%") {
			continue
		}
		header = strings.Fields(line)
		break
	}
	if len(header) < 3 {
		return nil, fmt.Errorf("mtxio: missing size line in %s", filename)
	}
	rows, err := strconv.Atoi(header[0])
	if err != nil {
		return nil, fmt.Errorf("mtxio: bad row count: %w", err)
	}
	nnz, err := strconv.Atoi(header[2])
	if err != nil {
		return nil, fmt.Errorf("mtxio: bad nonzero count: %w", err)
	}

	type coord struct {
		r, c int
		w    float64
	}
	entries := make([]coord, 0, nnz)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "%") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}
		r, err1 := strconv.Atoi(fields[0])
		c, err2 := strconv.Atoi(fields[1])
		if err1 != nil || err2 != nil {
			continue
		}
		w := 1.0
		if !pattern && len(fields) >= 3 {
			if parsed, err := strconv.ParseFloat(fields[2], 64); err == nil {
				w = parsed
			}
		}
		entries = append(entries, coord{r: r - 1, c: c - 1, w: w})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("mtxio: error scanning %s: %w", filename, err)
	}

	n := rows
	byRow := make([][]coord, n)
	for _, e := range entries {
		if e.r < 0 || e.r >= n || e.c < 0 || e.c >= n {
			continue
		}
		byRow[e.r] = append(byRow[e.r], e)
		if e.r != e.c {
			byRow[e.c] = append(byRow[e.c], coord{r: e.c, c: e.r, w: e.w})
		}
	}

	p := make([]int, n+1)
	var idx []int
	var x []float64
	munch := 0
	seen := make([]int, n)
	for i := range seen {
		seen[i] = -1
	}
	for r := 0; r < n; r++ {
		p[r] = munch
		start := munch
		for _, e := range byRow[r] {
			cp := seen[e.c]
			if cp < start {
				seen[e.c] = munch
				idx = append(idx, e.c)
				x = append(x, e.w)
				munch++
			} else {
				x[cp] += e.w
			}
		}
	}
	p[n] = munch

	return sep.Condition(n, p, idx, x, nil)
}
