package service

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"time"

	"birthdayreminder/internal/domain/entity"
)

// Accepted birth date layouts for CSV import, tried in order.
var csvDateLayouts = []string{
	"2006-01-02",
	"01/02/2006",
	"02/01/2006",
	"1/2/2006",
	"2/1/2006",
}

// ImportResult reports what a CSV import did. Bad lines are collected, not
// fatal; the import keeps going.
type ImportResult struct {
	Imported []*entity.Birthday
	Errors   []string
}

// ImportCSV reads birthdays from CSV content with the columns
// friendName,birthDate[,email[,notes[,category]]]. A first line that looks
// like a header is skipped. Category values are matched by name against the
// user's existing categories; unknown names import as uncategorized.
func (s *birthdayService) ImportCSV(userID int64, r io.Reader) (*ImportResult, error) {
	s.log.Info().Int64("user_id", userID).Msg("importing birthdays from CSV")

	categories, err := s.dm.Category().ListByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	categoryByName := make(map[string]*entity.Category, len(categories))
	for _, c := range categories {
		categoryByName[strings.ToLower(c.Name)] = c
	}

	result := &ImportResult{}
	scanner := bufio.NewScanner(r)
	lineNumber := 0
	first := true

	for scanner.Scan() {
		lineNumber++
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}

		if first {
			first = false
			lower := strings.ToLower(line)
			if strings.Contains(lower, "name") || strings.Contains(lower, "date") {
				continue
			}
		}

		parts := splitCSVLine(line)
		if len(parts) < 2 {
			result.Errors = append(result.Errors, fmt.Sprintf("line %d: invalid format (need at least name and date)", lineNumber))
			continue
		}

		friendName := strings.TrimSpace(parts[0])
		if friendName == "" {
			result.Errors = append(result.Errors, fmt.Sprintf("line %d: name is required", lineNumber))
			continue
		}

		birthDate, ok := parseCSVDate(strings.TrimSpace(parts[1]))
		if !ok {
			result.Errors = append(result.Errors, fmt.Sprintf("line %d: invalid date format", lineNumber))
			continue
		}

		birthday := &entity.Birthday{
			UserID:     userID,
			FriendName: friendName,
			BirthDate:  birthDate,
			IsActive:   true,
		}
		if len(parts) > 2 {
			birthday.FriendEmail = strings.TrimSpace(parts[2])
		}
		if len(parts) > 3 {
			birthday.Notes = strings.TrimSpace(parts[3])
		}
		if len(parts) > 4 {
			if category, ok := categoryByName[strings.ToLower(strings.TrimSpace(parts[4]))]; ok {
				birthday.CategoryID = &category.ID
			}
		}

		if err := s.dm.Birthday().Create(birthday); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("line %d: %v", lineNumber, err))
			continue
		}

		result.Imported = append(result.Imported, birthday)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}

	s.log.Info().
		Int64("user_id", userID).
		Int("imported", len(result.Imported)).
		Int("errors", len(result.Errors)).
		Msg("CSV import completed")

	return result, nil
}

// splitCSVLine splits on commas outside double quotes. Quotes are stripped.
func splitCSVLine(line string) []string {
	var parts []string
	var current strings.Builder
	inQuotes := false

	for _, c := range line {
		switch {
		case c == '"':
			inQuotes = !inQuotes
		case c == ',' && !inQuotes:
			parts = append(parts, current.String())
			current.Reset()
		default:
			current.WriteRune(c)
		}
	}
	parts = append(parts, current.String())

	return parts
}

func parseCSVDate(raw string) (time.Time, bool) {
	for _, layout := range csvDateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
