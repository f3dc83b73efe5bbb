package analysis

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	apperrors "volchart/internal/errors"
	"volchart/pkg/contracts/domain"
)

const (
	coinGeckoTimeLayout = "2006-01-02 15:04:05 MST"
	simpleDateLayout    = "2006-01-02"

	coinGeckoVolumeCol     = 3
	coinMarketCapVolumeCol = 9
)

// DetectSource determines the layout of a volume history from its header
func DetectSource(header []string) domain.DataSource {
	switch {
	case len(header) == 4 && header[0] == "snapped_at" && header[3] == "total_volume":
		return domain.SourceCoinGecko
	case len(header) == 2 && header[0] == "Date" && header[1] == "Volume":
		return domain.SourceSimple
	default:
		return domain.SourceCoinMarketCap
	}
}

// ReadVolumes parses a CoinGecko, CoinMarketCap or fetched Date,Volume
// history. CoinMarketCap exports are semicolon separated; the header line is
// only used to tell the layouts apart.
func ReadVolumes(r io.Reader) ([]domain.VolumeRecord, domain.DataSource, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, "", apperrors.NewStorageError("failed to read volume history", err)
	}
	data = bytes.TrimPrefix(data, []byte{0xEF, 0xBB, 0xBF})

	header, err := newReader(data, ',').Read()
	if err == io.EOF {
		return nil, "", apperrors.NewParsingError("volume history is empty", nil)
	}
	if err != nil {
		return nil, "", apperrors.NewParsingError("error reading header", err)
	}

	source := DetectSource(header)
	comma := ','
	if source == domain.SourceCoinMarketCap {
		comma = ';'
	}

	rows, err := newReader(data, comma).ReadAll()
	if err != nil {
		return nil, source, apperrors.NewParsingError("error reading record", err)
	}

	records := make([]domain.VolumeRecord, 0, len(rows))
	for i, row := range rows[1:] {
		record, err := parseRecord(row, source)
		if err != nil {
			return nil, source, apperrors.NewParsingError(fmt.Sprintf("line %d", i+2), err).
				WithContext("source", string(source))
		}
		records = append(records, record)
	}

	return records, source, nil
}

func newReader(data []byte, comma rune) *csv.Reader {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = comma
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1
	return reader
}

// parseRecord extracts the timestamp and volume of one row
func parseRecord(row []string, source domain.DataSource) (domain.VolumeRecord, error) {
	var (
		timestamp time.Time
		volume    string
		err       error
	)

	switch source {
	case domain.SourceCoinGecko:
		if len(row) <= coinGeckoVolumeCol {
			return domain.VolumeRecord{}, fmt.Errorf("expected %d fields, got %d", coinGeckoVolumeCol+1, len(row))
		}
		timestamp, err = time.Parse(coinGeckoTimeLayout, row[0])
		volume = row[coinGeckoVolumeCol]
	case domain.SourceSimple:
		if len(row) < 2 {
			return domain.VolumeRecord{}, fmt.Errorf("expected 2 fields, got %d", len(row))
		}
		timestamp, err = time.Parse(simpleDateLayout, row[0])
		volume = row[1]
	default:
		if len(row) <= coinMarketCapVolumeCol {
			return domain.VolumeRecord{}, fmt.Errorf("expected %d fields, got %d", coinMarketCapVolumeCol+1, len(row))
		}
		timestamp, err = time.Parse(time.RFC3339Nano, strings.Trim(row[0], `"`))
		volume = row[coinMarketCapVolumeCol]
	}
	if err != nil {
		return domain.VolumeRecord{}, fmt.Errorf("error parsing timestamp: %w", err)
	}

	v, err := strconv.ParseFloat(strings.TrimSpace(volume), 64)
	if err != nil {
		return domain.VolumeRecord{}, fmt.Errorf("error parsing volume: %w", err)
	}

	return domain.VolumeRecord{Date: timestamp.UTC(), Volume: v}, nil
}
