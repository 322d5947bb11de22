package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/Elmerluis0129/WanMarKay-sub000/internal/encoding"
	"github.com/Elmerluis0129/WanMarKay-sub000/internal/user"
)

var ErrMissingHeader = errors.New("missing required header")

// requiredHeaders are the columns a client-book export must carry.
// Column order is free; extra columns are ignored.
var requiredHeaders = []string{"name", "email"}

// Service parses client-book CSV exports into client creation params.
type Service struct{}

func NewService() *Service {
	return &Service{}
}

// Row is one parsed client line with its original position, kept for
// error reporting back to the administrator.
type Row struct {
	Line   int
	Params user.CreateParams
}

// Parse reads a client CSV (any of UTF-8, UTF-16 or Windows-1252) and
// returns the client rows. Blank lines are skipped; a row without a
// name or email is an error rather than a silent drop.
func (s *Service) Parse(r io.Reader) ([]Row, error) {
	decoded, err := encoding.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("detecting encoding: %w", err)
	}

	cr := csv.NewReader(decoded)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, h := range header {
		index[strings.ToLower(strings.TrimSpace(h))] = i
	}

	for _, h := range requiredHeaders {
		if _, ok := index[h]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingHeader, h)
		}
	}

	var rows []Row

	line := 1

	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}

		line++

		if err != nil {
			return nil, fmt.Errorf("reading line %d: %w", line, err)
		}

		if isBlank(record) {
			continue
		}

		params, err := recordToParams(record, index)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		rows = append(rows, Row{Line: line, Params: params})
	}

	return rows, nil
}

func isBlank(record []string) bool {
	for _, field := range record {
		if strings.TrimSpace(field) != "" {
			return false
		}
	}

	return true
}

func recordToParams(record []string, index map[string]int) (user.CreateParams, error) {
	field := func(name string) string {
		i, ok := index[name]
		if !ok || i >= len(record) {
			return ""
		}

		return strings.TrimSpace(record[i])
	}

	name := field("name")
	if name == "" {
		return user.CreateParams{}, errors.New("empty name")
	}

	email := field("email")
	if email == "" || !strings.Contains(email, "@") {
		return user.CreateParams{}, fmt.Errorf("invalid email %q", email)
	}

	return user.CreateParams{
		Name:     name,
		Email:    email,
		Phone:    field("phone"),
		Role:     user.RoleClient,
		Password: field("password"),
	}, nil
}
