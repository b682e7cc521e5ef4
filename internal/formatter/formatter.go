// package formatter provides functions to export subscription data to various formats (CSV, Markdown, plain text)
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"

	"github.com/desertthunder/subdeck/internal/models"
	"github.com/desertthunder/subdeck/internal/shared"
)

// SubscriptionExport bundles the collection with the profile it belongs to.
type SubscriptionExport struct {
	Profile       *models.UserProfile   `json:"profile,omitempty"`
	Subscriptions []models.Subscription `json:"subscriptions"`
}

// ExportToCSV converts a SubscriptionExport to CSV format with columns: ID, ChannelID, Title, Subscribers, Videos, SubscribedSince
func ExportToCSV(export *SubscriptionExport) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"ID", "ChannelID", "Title", "Subscribers", "Videos", "SubscribedSince"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, sub := range export.Subscriptions {
		subscribers, videos := "", ""
		if sub.Statistics != nil {
			subscribers = sub.Statistics.SubscriberCount
			videos = sub.Statistics.VideoCount
		}

		record := []string{
			sub.ID,
			sub.ChannelID,
			sub.Title,
			subscribers,
			videos,
			shared.FormatDate(sub.PublishedAt),
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToMarkdown converts a SubscriptionExport to Markdown format
func ExportToMarkdown(export *SubscriptionExport) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString("# YouTube Subscriptions\n\n")

	if export.Profile != nil && export.Profile.Name != "" {
		buf.WriteString(fmt.Sprintf("**Account**: %s\n", export.Profile.Name))
	}
	buf.WriteString(fmt.Sprintf("**Channels**: %d\n\n", len(export.Subscriptions)))

	buf.WriteString("## Channels\n\n")
	for i, sub := range export.Subscriptions {
		statsPart := ""
		if sub.Statistics != nil && sub.Statistics.SubscriberCount != "" {
			statsPart = fmt.Sprintf(" — %s subscribers", shared.FormatCount(sub.Statistics.SubscriberCount))
		}
		buf.WriteString(fmt.Sprintf("%d. [%s](https://www.youtube.com/channel/%s)%s\n", i+1, sub.Title, sub.ChannelID, statsPart))
	}

	return buf.Bytes(), nil
}

// ExportToText converts a SubscriptionExport to plain text format
func ExportToText(export *SubscriptionExport) ([]byte, error) {
	var buf bytes.Buffer

	if export.Profile != nil && export.Profile.Name != "" {
		buf.WriteString(fmt.Sprintf("Account: %s\n", export.Profile.Name))
	}
	buf.WriteString(fmt.Sprintf("Channels: %d\n\n", len(export.Subscriptions)))

	for i, sub := range export.Subscriptions {
		buf.WriteString(fmt.Sprintf("%d. %s\n", i+1, sub.Title))
	}

	return buf.Bytes(), nil
}

// ToJSON generates a JSON representation of the export.
func ToJSON(export *SubscriptionExport) ([]byte, error) {
	return shared.MarshalJSON(export, true)
}

// WriteCSVExport exports subscriptions to CSV with an accompanying profile JSON file.
//
// Defaults to "subscriptions" as the base filename & creates {base}.csv and {base}_profile.json
func WriteCSVExport(export *SubscriptionExport, baseFilepath string) ([]string, error) {
	if baseFilepath == "" {
		baseFilepath = "subscriptions"
	}

	csvData, err := ExportToCSV(export)
	if err != nil {
		return nil, fmt.Errorf("failed to generate CSV: %w", err)
	}

	csvFile := baseFilepath + ".csv"
	if err := os.WriteFile(csvFile, csvData, 0644); err != nil {
		return nil, fmt.Errorf("failed to write CSV file: %w", err)
	}

	files := []string{csvFile}

	if export.Profile != nil {
		profileJSON, err := shared.MarshalJSON(export.Profile, true)
		if err != nil {
			return nil, fmt.Errorf("failed to generate profile JSON: %w", err)
		}

		profileFile := baseFilepath + "_profile.json"
		if err := os.WriteFile(profileFile, profileJSON, 0644); err != nil {
			return nil, fmt.Errorf("failed to write profile file: %w", err)
		}
		files = append(files, profileFile)
	}

	return files, nil
}

// WriteMarkdownExport exports subscriptions to a Markdown file.
//
// Defaults to subscriptions.md as the filename.
func WriteMarkdownExport(export *SubscriptionExport, filepath string) (string, error) {
	if filepath == "" {
		filepath = "subscriptions.md"
	}

	mdData, err := ExportToMarkdown(export)
	if err != nil {
		return "", fmt.Errorf("failed to generate Markdown: %w", err)
	}

	if err := os.WriteFile(filepath, mdData, 0644); err != nil {
		return "", fmt.Errorf("failed to write Markdown file: %w", err)
	}

	return filepath, nil
}

// WriteTextExport exports subscriptions to plain text format.
//
// Defaults to subscriptions.txt as the filename.
func WriteTextExport(export *SubscriptionExport, filepath string) (string, error) {
	if filepath == "" {
		filepath = "subscriptions.txt"
	}

	textData, err := ExportToText(export)
	if err != nil {
		return "", fmt.Errorf("failed to generate text: %w", err)
	}

	if err := os.WriteFile(filepath, textData, 0644); err != nil {
		return "", fmt.Errorf("failed to write text file: %w", err)
	}

	return filepath, nil
}
