package refgen

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/inodb/go-enrich/internal/locus"
)

// LoadTSV reads loci from a tab-separated file into the reference genome.
// Expected columns: id, chrom, start, end, strand. Strand may be "+", "-",
// "1" or "-1"; missing strand defaults to forward. Lines starting with #
// and empty lines are skipped. Gzipped files (.gz) are supported.
func (r *RefGen) LoadTSV(path string) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open loci file: %w", err)
	}
	defer file.Close()

	var reader io.Reader = file
	if strings.HasSuffix(path, ".gz") {
		gz, err := gzip.NewReader(file)
		if err != nil {
			return fmt.Errorf("create gzip reader: %w", err)
		}
		defer gz.Close()
		reader = gz
	}

	scanner := bufio.NewScanner(reader)
	scanner.Buffer(make([]byte, 1024*1024), 1024*1024)

	lineNumber := 0
	for scanner.Scan() {
		lineNumber++
		line := strings.TrimRight(scanner.Text(), "\r\n")
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Split(line, "\t")
		if len(fields) < 4 {
			return fmt.Errorf("line %d: expected at least 4 columns, got %d", lineNumber, len(fields))
		}

		start, err := strconv.ParseInt(fields[2], 10, 64)
		if err != nil {
			return fmt.Errorf("line %d: invalid start %q: %w", lineNumber, fields[2], err)
		}
		end, err := strconv.ParseInt(fields[3], 10, 64)
		if err != nil {
			return fmt.Errorf("line %d: invalid end %q: %w", lineNumber, fields[3], err)
		}

		strand := int8(1)
		if len(fields) >= 5 {
			switch fields[4] {
			case "-", "-1":
				strand = -1
			case "+", "1", "":
				strand = 1
			default:
				return fmt.Errorf("line %d: invalid strand %q", lineNumber, fields[4])
			}
		}

		r.Add(locus.New(fields[0], fields[1], start, end, strand))
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read loci file: %w", err)
	}
	return nil
}
