package converter

import (
	"io/fs"
	log "log/slog"
	"path/filepath"
	"sort"
	"strings"
)

// Census 只统计各光盘上的扩展名分布，不做任何转存。
// 用来确认转换表覆盖了盘上出现的所有格式
func (c *Converter) Census() error {
	counts := map[string]int{}
	total := 0

	for _, src := range c.cfg.Convert.Sources {
		log.Info("Checking file extensions", "origin_cd", src.OriginCD, "mount", src.Mount)

		err := filepath.WalkDir(src.Mount, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				return nil
			}
			counts[strings.ToLower(filepath.Ext(path))]++
			total++
			return nil
		})
		if err != nil {
			return err
		}
	}

	type extCount struct {
		Ext   string
		Count int
	}
	sorted := make([]extCount, 0, len(counts))
	for ext, count := range counts {
		sorted = append(sorted, extCount{ext, count})
	}
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Count > sorted[j].Count })

	for _, e := range sorted {
		log.Info("extension", "ext", e.Ext, "count", e.Count)
	}
	log.Info("census finished", "total_files", total)
	return nil
}
