package ui

import (
	"sort"
	"strconv"
	"strings"

	"github.com/desertthunder/subdeck/internal/models"
)

// SortMode selects the ordering applied to the subscription list.
type SortMode int

const (
	SortByTitle SortMode = iota
	SortByNewest
	SortBySubscribers
)

func (s SortMode) String() string {
	switch s {
	case SortByTitle:
		return "title"
	case SortByNewest:
		return "newest"
	case SortBySubscribers:
		return "subscribers"
	default:
		return "title"
	}
}

// next cycles to the following sort mode.
func (s SortMode) next() SortMode {
	switch s {
	case SortByTitle:
		return SortByNewest
	case SortByNewest:
		return SortBySubscribers
	default:
		return SortByTitle
	}
}

// SortSubscriptions returns a sorted copy of subs. Title sorting is
// case-insensitive; newest and subscriber sorts are descending. Channels
// without statistics sort after those with.
func SortSubscriptions(subs []models.Subscription, mode SortMode) []models.Subscription {
	sorted := make([]models.Subscription, len(subs))
	copy(sorted, subs)

	switch mode {
	case SortByNewest:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].PublishedAt.After(sorted[j].PublishedAt)
		})
	case SortBySubscribers:
		sort.SliceStable(sorted, func(i, j int) bool {
			return subscriberCount(sorted[i]) > subscriberCount(sorted[j])
		})
	default:
		sort.SliceStable(sorted, func(i, j int) bool {
			return strings.ToLower(sorted[i].Title) < strings.ToLower(sorted[j].Title)
		})
	}

	return sorted
}

func subscriberCount(sub models.Subscription) int64 {
	if sub.Statistics == nil {
		return -1
	}
	n, err := strconv.ParseInt(sub.Statistics.SubscriberCount, 10, 64)
	if err != nil {
		return -1
	}
	return n
}
