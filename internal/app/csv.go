package app

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"beer_machine/internal/ledger"
	"beer_machine/internal/models"
)

// csvDateLayout is the day-first date format used in member exports.
const csvDateLayout = "02-01-2006"

// ExportUsersCSV renders all members and non-members as CSV, ordered by
// username. Columns: username, credits, date of birth, membership flag.
func (app *App) ExportUsersCSV(ctx context.Context) ([]byte, error) {
	users, _, err := app.db.ListUsers(ctx, models.UserFilter{Limit: -1})
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)
	if err := writer.Write([]string{"username", "credits", "dateOfBirth", "isMember"}); err != nil {
		return nil, err
	}

	for _, user := range users {
		if user.UserType != models.UserTypeMember && user.UserType != models.UserTypeNonMember {
			continue
		}
		dateOfBirth := ""
		if user.DateOfBirth != nil {
			dateOfBirth = user.DateOfBirth.Format(csvDateLayout)
		}
		isMember := "false"
		if user.UserType == models.UserTypeMember {
			isMember = "true"
		}
		record := []string{user.Username, strconv.Itoa(user.Credits), dateOfBirth, isMember}
		if err := writer.Write(record); err != nil {
			return nil, err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ImportUsersCSV creates member accounts from an exported CSV. Rows that fail
// validation or collide with existing usernames are skipped and reported,
// the rest are imported.
func (app *App) ImportUsersCSV(ctx context.Context, file io.Reader) (*models.CSVImportResult, error) {
	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	result := &models.CSVImportResult{}
	line := 0
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			result.Failed++
			result.Errors = append(result.Errors, fmt.Sprintf("line %d: %s", line, err))
			continue
		}
		if line == 1 && strings.EqualFold(strings.TrimSpace(record[0]), "username") {
			continue
		}

		user, err := parseUserRecord(record)
		if err != nil {
			result.Failed++
			result.Errors = append(result.Errors, fmt.Sprintf("line %d: %s", line, err))
			continue
		}

		if _, err := app.db.GetUserByUsername(ctx, user.Username); err == nil {
			result.Failed++
			result.Errors = append(result.Errors, fmt.Sprintf("line %d: username %q already exists", line, user.Username))
			continue
		} else if !errors.Is(err, ledger.ErrUserNotFound) {
			return nil, err
		}

		if _, err := app.db.CreateUser(ctx, user); err != nil {
			result.Failed++
			result.Errors = append(result.Errors, fmt.Sprintf("line %d: %s", line, err))
			continue
		}
		result.Imported++
	}

	return result, nil
}

// parseUserRecord converts one CSV row into a user without a password.
func parseUserRecord(record []string) (*models.User, error) {
	if len(record) < 4 {
		return nil, errors.New("expected 4 columns")
	}

	username := strings.TrimSpace(record[0])
	if username == "" {
		return nil, errors.New("username is empty")
	}

	credits, err := strconv.Atoi(strings.TrimSpace(record[1]))
	if err != nil {
		return nil, fmt.Errorf("invalid credits value %q", record[1])
	}
	if credits < 0 {
		return nil, fmt.Errorf("negative credits value %d", credits)
	}

	var dateOfBirth *time.Time
	if raw := strings.TrimSpace(record[2]); raw != "" {
		parsed, err := time.Parse(csvDateLayout, raw)
		if err != nil {
			return nil, fmt.Errorf("invalid date of birth %q", raw)
		}
		dateOfBirth = &parsed
	}

	userType := models.UserTypeNonMember
	switch strings.ToLower(strings.TrimSpace(record[3])) {
	case "true", "1", "yes":
		userType = models.UserTypeMember
	case "false", "0", "no", "":
	default:
		return nil, fmt.Errorf("invalid membership flag %q", record[3])
	}

	return &models.User{
		Username:    username,
		Credits:     credits,
		DateOfBirth: dateOfBirth,
		UserType:    userType,
		IsActive:    true,
	}, nil
}
