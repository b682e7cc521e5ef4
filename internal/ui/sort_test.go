package ui

import (
	"testing"
	"time"

	"github.com/desertthunder/subdeck/internal/models"
)

func sampleSubs() []models.Subscription {
	return []models.Subscription{
		{
			ID:          "sub1",
			ChannelID:   "UC1",
			Title:       "zebra channel",
			PublishedAt: time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
			Statistics:  &models.Statistics{SubscriberCount: "500"},
		},
		{
			ID:          "sub2",
			ChannelID:   "UC2",
			Title:       "Alpha Channel",
			PublishedAt: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
			Statistics:  &models.Statistics{SubscriberCount: "2000000"},
		},
		{
			ID:          "sub3",
			ChannelID:   "UC3",
			Title:       "middle channel",
			PublishedAt: time.Date(2022, 3, 1, 0, 0, 0, 0, time.UTC),
		},
	}
}

func TestSortSubscriptions(t *testing.T) {
	t.Run("ByTitle", func(t *testing.T) {
		sorted := SortSubscriptions(sampleSubs(), SortByTitle)

		if sorted[0].Title != "Alpha Channel" || sorted[2].Title != "zebra channel" {
			t.Errorf("expected case-insensitive title order, got %s, %s, %s",
				sorted[0].Title, sorted[1].Title, sorted[2].Title)
		}
	})

	t.Run("ByNewest", func(t *testing.T) {
		sorted := SortSubscriptions(sampleSubs(), SortByNewest)

		if sorted[0].ID != "sub2" || sorted[2].ID != "sub1" {
			t.Errorf("expected newest-first order, got %s, %s, %s",
				sorted[0].ID, sorted[1].ID, sorted[2].ID)
		}
	})

	t.Run("BySubscribers", func(t *testing.T) {
		sorted := SortSubscriptions(sampleSubs(), SortBySubscribers)

		if sorted[0].ID != "sub2" {
			t.Errorf("expected largest channel first, got %s", sorted[0].ID)
		}

		// Unenriched channels sort last.
		if sorted[2].ID != "sub3" {
			t.Errorf("expected unenriched channel last, got %s", sorted[2].ID)
		}
	})

	t.Run("DoesNotMutateInput", func(t *testing.T) {
		subs := sampleSubs()
		SortSubscriptions(subs, SortByTitle)

		if subs[0].ID != "sub1" {
			t.Error("input slice should not be reordered")
		}
	})

	t.Run("ModeCycles", func(t *testing.T) {
		mode := SortByTitle
		mode = mode.next()
		if mode != SortByNewest {
			t.Errorf("expected SortByNewest, got %v", mode)
		}
		mode = mode.next()
		if mode != SortBySubscribers {
			t.Errorf("expected SortBySubscribers, got %v", mode)
		}
		mode = mode.next()
		if mode != SortByTitle {
			t.Errorf("expected wrap to SortByTitle, got %v", mode)
		}
	})
}
