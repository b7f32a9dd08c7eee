package bench

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/parquet-go/parquet-go"
	"github.com/parquet-go/parquet-go/compress/zstd"
)

// Write the win counts, one matrix row per line
func WriteCSV(w io.Writer, wins [][]int) error {
	writer := csv.NewWriter(w)
	for _, row := range wins {
		record := make([]string, len(row))
		for i, n := range row {
			record[i] = strconv.Itoa(n)
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("write csv: %w", err)
		}
	}
	writer.Flush()
	return writer.Error()
}

func WriteCSVFile(path string, wins [][]int) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv: %w", err)
	}
	if err := WriteCSV(f, wins); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Write the game rows to a zstd compressed parquet file, through a temp
// file renamed into place
func WriteParquet(outPath string, rows []MatchRow) error {
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	tmpPath := outPath + ".tmp"
	_ = os.Remove(tmpPath)

	if err := parquet.WriteFile(tmpPath, rows,
		parquet.Compression(&zstd.Codec{Level: zstd.SpeedBetterCompression}),
		parquet.KeyValueMetadata("schema", "match_row_v1"),
	); err != nil {
		return fmt.Errorf("write parquet: %w", err)
	}

	if err := os.Rename(tmpPath, outPath); err != nil {
		return fmt.Errorf("rename parquet: %w", err)
	}
	return nil
}

func ReadParquet(path string) ([]MatchRow, error) {
	rows, err := parquet.ReadFile[MatchRow](path)
	if err != nil {
		return nil, fmt.Errorf("read parquet: %w", err)
	}
	return rows, nil
}
