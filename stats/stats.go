// Package stats keeps the history of finished rounds in a JSON file.
package stats

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// GroupSize is how many records of one compression level are folded into
// a single record of the next level.
const GroupSize = 100

// GameRecord is one round, or a group of rounds when CompressionIndex > 0.
type GameRecord struct {
	ID               string    `json:"id"`
	Map              string    `json:"map,omitempty"`
	StartTime        time.Time `json:"startTime"`
	EndTime          time.Time `json:"endTime"`
	Score            int       `json:"score"`
	CompressionIndex int       `json:"compressionIndex"`
	GamesCount       int       `json:"gamesCount"`
	AverageScore     float64   `json:"averageScore"`
	MaxScore         int       `json:"maxScore"`
	MinScore         int       `json:"minScore"`
	AverageDuration  float64   `json:"averageDuration"`
}

// GameStats holds every recorded round.
type GameStats struct {
	path  string
	games []GameRecord
	mutex sync.RWMutex
}

// Load reads the stats file at path. A missing file starts an empty history.
func Load(path string) (*GameStats, error) {
	s := &GameStats{path: path}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return s, errors.Wrap(err, "read stats")
	}
	if err := json.Unmarshal(data, &s.games); err != nil {
		return s, errors.Wrap(err, "decode stats")
	}
	return s, nil
}

// AddGame records a finished round and returns its record.
func (s *GameStats) AddGame(mapName string, score int, startTime, endTime time.Time) GameRecord {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	duration := endTime.Sub(startTime).Seconds()
	game := GameRecord{
		ID:              uuid.NewString(),
		Map:             mapName,
		StartTime:       startTime,
		EndTime:         endTime,
		Score:           score,
		GamesCount:      1,
		AverageScore:    float64(score),
		MaxScore:        score,
		MinScore:        score,
		AverageDuration: duration,
	}
	s.games = append(s.games, game)
	s.groupGames()
	return game
}

// groupGames folds every full run of GroupSize records of one level into
// one record of the next level. Records stay in chronological order
// within a level.
func (s *GameStats) groupGames() {
	for level := 0; level <= s.maxLevel(); level++ {
		var records, rest []GameRecord
		for _, g := range s.games {
			if g.CompressionIndex == level {
				records = append(records, g)
			} else {
				rest = append(rest, g)
			}
		}
		if len(records) < GroupSize {
			continue
		}

		var grouped []GameRecord
		for i := 0; i < len(records); i += GroupSize {
			if i+GroupSize > len(records) {
				grouped = append(grouped, records[i:]...)
				break
			}
			grouped = append(grouped, merge(records[i:i+GroupSize], level+1))
		}
		s.games = append(rest, grouped...)
	}
	sort.SliceStable(s.games, func(i, j int) bool {
		return s.games[i].StartTime.Before(s.games[j].StartTime)
	})
}

func (s *GameStats) maxLevel() int {
	top := 0
	for _, g := range s.games {
		if g.CompressionIndex > top {
			top = g.CompressionIndex
		}
	}
	return top
}

func merge(group []GameRecord, level int) GameRecord {
	out := GameRecord{
		ID:               uuid.NewString(),
		StartTime:        group[0].StartTime,
		EndTime:          group[0].EndTime,
		CompressionIndex: level,
		MaxScore:         group[0].MaxScore,
		MinScore:         group[0].MinScore,
	}
	var totalScore, totalDuration float64
	for _, g := range group {
		if g.MaxScore > out.MaxScore {
			out.MaxScore = g.MaxScore
		}
		if g.MinScore < out.MinScore {
			out.MinScore = g.MinScore
		}
		if g.StartTime.Before(out.StartTime) {
			out.StartTime = g.StartTime
		}
		if g.EndTime.After(out.EndTime) {
			out.EndTime = g.EndTime
		}
		totalScore += g.AverageScore * float64(g.GamesCount)
		totalDuration += g.AverageDuration * float64(g.GamesCount)
		out.GamesCount += g.GamesCount
	}
	out.AverageScore = totalScore / float64(out.GamesCount)
	out.AverageDuration = totalDuration / float64(out.GamesCount)
	return out
}

// GetStats returns a copy of the records.
func (s *GameStats) GetStats() []GameRecord {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return append([]GameRecord(nil), s.games...)
}

// GetGamesPlayed returns the number of rounds recorded.
func (s *GameStats) GetGamesPlayed() int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	total := 0
	for _, g := range s.games {
		total += g.GamesCount
	}
	return total
}

// GetAverageScore returns the mean score over all rounds.
func (s *GameStats) GetAverageScore() float64 {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	var total float64
	var count int
	for _, g := range s.games {
		total += g.AverageScore * float64(g.GamesCount)
		count += g.GamesCount
	}
	if count == 0 {
		return 0
	}
	return total / float64(count)
}

// GetMaxScore returns the best score recorded.
func (s *GameStats) GetMaxScore() int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	best := 0
	for _, g := range s.games {
		if g.MaxScore > best {
			best = g.MaxScore
		}
	}
	return best
}

// SaveToFile writes the history as JSON, creating the directory if needed.
func (s *GameStats) SaveToFile() error {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return errors.Wrap(err, "create data directory")
	}
	data, err := json.MarshalIndent(s.games, "", "  ")
	if err != nil {
		return errors.Wrap(err, "encode stats")
	}
	return errors.Wrap(os.WriteFile(s.path, data, 0644), "write stats")
}
