package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/desertthunder/spotydw/internal/models"
)

var _ list.Item = resultItem{}

// resultItem wraps [models.JobResult] to implement [list.Item].
type resultItem struct {
	result models.JobResult
}

func (i resultItem) FilterValue() string { return i.result.Track.Name }
func (i resultItem) Title() string {
	mark := "✓"
	if !i.result.OK() {
		mark = "✗"
	}
	return fmt.Sprintf("%s %d. %s", mark, i.result.Index+1, i.result.Track.Name)
}
func (i resultItem) Description() string {
	desc := strings.Join(i.result.Track.ArtistNames(), ", ")
	if i.result.OK() {
		return fmt.Sprintf("%s • %s", desc, i.result.OutputPath)
	}
	return fmt.Sprintf("%s • failed while %s: %s", desc, i.result.FailedAt, i.result.Error)
}

func resultItems(results []models.JobResult, failuresOnly bool) []list.Item {
	items := make([]list.Item, 0, len(results))
	for _, r := range results {
		if failuresOnly && r.OK() {
			continue
		}
		items = append(items, resultItem{result: r})
	}
	return items
}
