package usecase

import (
	"fmt"
	"strconv"

	"github.com/riskibarqy/mlb-team-timeline/internal/domain/franchise"
	"github.com/riskibarqy/mlb-team-timeline/internal/domain/player"
	"github.com/riskibarqy/mlb-team-timeline/internal/domain/tenure"
)

const (
	TimelineTitle     = "MLB Player Team Timelines"
	TimelineXAxis     = "Year"
	minTimelineHeight = 800
	rowHeight         = 40
)

// Timeline is a stacked horizontal bar chart: one row per player, one
// segment per tenure block.
type Timeline struct {
	Query     string          `json:"query"`
	Franchise franchise.Match `json:"franchise"`
	Rows      []TimelineRow   `json:"rows"`
	Legend    []LegendEntry   `json:"legend"`
	Layout    TimelineLayout  `json:"layout"`
}

type TimelineRow struct {
	PlayerID   string            `json:"playerId"`
	PlayerName string            `json:"playerName"`
	Segments   []TimelineSegment `json:"segments"`
}

type TimelineSegment struct {
	Base       int    `json:"base"`
	Length     int    `json:"length"`
	StartYear  int    `json:"startYear"`
	EndYear    int    `json:"endYear"`
	Code       string `json:"code"`
	Label      string `json:"label"`
	TeamName   string `json:"teamName"`
	Color      string `json:"color"`
	HoverText  string `json:"hoverText"`
	LegendKey  string `json:"legendKey"`
	ShowLegend bool   `json:"showLegend"`
}

type LegendEntry struct {
	Key   string `json:"key"`
	Code  string `json:"code"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

type TimelineLayout struct {
	Title         string `json:"title"`
	XAxisTitle    string `json:"xAxisTitle"`
	Height        int    `json:"height"`
	Orientation   string `json:"orientation"`
	BarMode       string `json:"barMode"`
	YAxisReversed bool   `json:"yAxisReversed"`
}

type playerBlocks struct {
	player player.Player
	blocks []tenure.Block
}

func renderTimeline(query string, match franchise.Match, rows []playerBlocks, directory franchise.Lookup) Timeline {
	out := Timeline{
		Query:     query,
		Franchise: match,
		Rows:      make([]TimelineRow, 0, len(rows)),
		Legend:    make([]LegendEntry, 0),
		Layout: TimelineLayout{
			Title:         TimelineTitle,
			XAxisTitle:    TimelineXAxis,
			Height:        max(minTimelineHeight, rowHeight*len(rows)),
			Orientation:   "h",
			BarMode:       "stack",
			YAxisReversed: true,
		},
	}

	seen := make(map[string]struct{})
	for _, row := range rows {
		name := row.player.DisplayName()
		segments := make([]TimelineSegment, 0, len(row.blocks))
		for _, block := range row.blocks {
			seg := renderSegment(name, block, directory)
			if _, dup := seen[seg.LegendKey]; !dup {
				seen[seg.LegendKey] = struct{}{}
				seg.ShowLegend = true
				out.Legend = append(out.Legend, LegendEntry{
					Key:   seg.LegendKey,
					Code:  seg.Code,
					Name:  seg.TeamName,
					Color: seg.Color,
				})
			}
			segments = append(segments, seg)
		}
		out.Rows = append(out.Rows, TimelineRow{
			PlayerID:   row.player.ID,
			PlayerName: name,
			Segments:   segments,
		})
	}

	return out
}

func renderSegment(playerName string, block tenure.Block, directory franchise.Lookup) TimelineSegment {
	label := directory.LabelOf(block.FranchiseID)
	teamName := directory.NameOf(block.FranchiseID)
	years := strconv.Itoa(block.StartYear) + "-" + strconv.Itoa(block.EndYear)

	return TimelineSegment{
		Base:      block.StartYear,
		Length:    block.Seasons(),
		StartYear: block.StartYear,
		EndYear:   block.EndYear,
		Code:      block.FranchiseID,
		Label:     label,
		TeamName:  teamName,
		Color:     directory.ColorOf(block.FranchiseID),
		HoverText: fmt.Sprintf("%s\nTeam: %s\nYears: %s", playerName, teamName, years),
		LegendKey: fmt.Sprintf("%s (%s)", label, teamName),
	}
}
