package importer

import (
	"context"
	"database/sql"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/kevinblo/fwords-backend/internal/database"
	"github.com/kevinblo/fwords-backend/pkg/models"
)

// Config defines how a catalog file is read. Expected columns, in order:
// word, language code, transcription, part of speech, difficulty, gender,
// translation, translation language code.
type Config struct {
	FilePath   string
	SheetName  string
	StartRow   int // 1-based, rows above it are skipped
}

// DefaultConfig returns the default import configuration
func DefaultConfig() Config {
	return Config{
		SheetName: "Sheet1",
		StartRow:  2,
	}
}

// Result holds the outcome of an import operation
type Result struct {
	TotalProcessed      int
	WordsCreated        int
	WordsSkipped        int
	TranslationsCreated int
	Errors              []string
}

// ImportWords loads a word catalog from an Excel or CSV file
func ImportWords(ctx context.Context, config Config) (*Result, error) {
	ext := strings.ToLower(filepath.Ext(config.FilePath))
	if ext == ".csv" {
		return importFromCSV(ctx, config)
	}
	return importFromExcel(ctx, config)
}

func importFromExcel(ctx context.Context, config Config) (*Result, error) {
	f, err := excelize.OpenFile(config.FilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(config.SheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to get rows: %v", err)
	}

	result := &Result{Errors: make([]string, 0)}
	for i, row := range rows {
		if i < config.StartRow-1 {
			continue
		}
		result.TotalProcessed++
		if err := processRow(ctx, row, result); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: %v", i+1, err))
		}
	}
	return result, nil
}

func importFromCSV(ctx context.Context, config Config) (*Result, error) {
	file, err := os.Open(config.FilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %v", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	result := &Result{Errors: make([]string, 0)}
	rowNum := 0
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV: %v", err)
		}
		rowNum++
		if rowNum < config.StartRow {
			continue
		}
		result.TotalProcessed++
		if err := processRow(ctx, row, result); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: %v", rowNum, err))
		}
	}
	return result, nil
}

func cell(row []string, idx int) string {
	if idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// processRow creates the word, its translation and the linking pair. Words
// that already exist for their language are reused, not duplicated.
func processRow(ctx context.Context, row []string, result *Result) error {
	text := cell(row, 0)
	languageCode := cell(row, 1)
	if text == "" || languageCode == "" {
		result.WordsSkipped++
		return nil
	}

	languageRepo := database.NewLanguageRepository()
	posRepo := database.NewPartOfSpeechRepository()
	wordRepo := database.NewWordRepository()

	language, err := languageRepo.GetOrCreateByCode(ctx, languageCode, languageCode)
	if err != nil {
		return err
	}

	difficulty := cell(row, 4)
	if difficulty == "" {
		difficulty = models.DifficultyBeginner
	}
	if !models.ValidDifficulty(difficulty) {
		return fmt.Errorf("unknown difficulty %q", difficulty)
	}

	posCode := cell(row, 3)
	if posCode == "" {
		posCode = "noun"
	}
	pos, err := posRepo.GetOrCreateByCode(ctx, posCode, posCode)
	if err != nil {
		return err
	}

	word, err := upsertWord(ctx, wordRepo, text, language.ID, pos.ID, difficulty, cell(row, 2), cell(row, 5), result)
	if err != nil {
		return err
	}

	translationText := cell(row, 6)
	translationLang := cell(row, 7)
	if translationText == "" || translationLang == "" {
		return nil
	}

	targetLanguage, err := languageRepo.GetOrCreateByCode(ctx, translationLang, translationLang)
	if err != nil {
		return err
	}
	target, err := upsertWord(ctx, wordRepo, translationText, targetLanguage.ID, pos.ID, difficulty, "", "", result)
	if err != nil {
		return err
	}

	exists, err := wordRepo.TranslationExists(ctx, word.ID, target.ID)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	translation := &models.WordTranslation{
		SourceWordID: word.ID,
		TargetWordID: target.ID,
		Confidence:   1.0,
	}
	if err := wordRepo.CreateTranslation(ctx, translation); err != nil {
		return err
	}
	result.TranslationsCreated++
	return nil
}

func upsertWord(ctx context.Context, wordRepo *database.WordRepository, text string, languageID, posID int64, difficulty, transcription, gender string, result *Result) (*models.Word, error) {
	existing, err := wordRepo.GetByTextAndLanguage(ctx, text, languageID)
	if err == nil {
		result.WordsSkipped++
		return existing, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	word := &models.Word{
		Word:            text,
		LanguageID:      languageID,
		Transcription:   transcription,
		PartOfSpeechID:  posID,
		DifficultyLevel: difficulty,
		Active:          true,
	}
	if gender != "" {
		word.Gender = &gender
	}
	if err := wordRepo.Create(ctx, word); err != nil {
		return nil, err
	}
	result.WordsCreated++
	return word, nil
}
