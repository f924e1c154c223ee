package services

import (
	"errors"
	"math/rand"

	"github.com/YannisFouzi/blind-test-sub001/internal/game"
	"github.com/YannisFouzi/blind-test-sub001/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CatalogService is the song catalog collaborator: it serves the configure
// UI, feeds the game core through SongsForConfiguration, and handles bulk
// JSON import/export for catalog ingestion.
type CatalogService struct {
	db *gorm.DB
}

func NewCatalogService(db *gorm.DB) *CatalogService {
	return &CatalogService{db: db}
}

func (s *CatalogService) ListUniverses() ([]models.Universe, error) {
	var universes []models.Universe
	err := s.db.Order("order_num ASC, name ASC").Find(&universes).Error
	return universes, err
}

func (s *CatalogService) ListWorks(universeID string) ([]models.Work, error) {
	var works []models.Work
	err := s.db.Where("universe_id = ?", universeID).
		Order("order_num ASC, title ASC").
		Find(&works).Error
	return works, err
}

func (s *CatalogService) ListSongs(universeID string) ([]models.Song, error) {
	works, err := s.ListWorks(universeID)
	if err != nil {
		return nil, err
	}
	if len(works) == 0 {
		return nil, nil
	}

	ids := make([]string, 0, len(works))
	for _, w := range works {
		ids = append(ids, w.ID)
	}

	var songs []models.Song
	err = s.db.Where("work_id IN ?", ids).Order("title ASC").Find(&songs).Error
	return songs, err
}

// SongsForConfiguration resolves a game configuration to its playable songs
// and answer options. Works are filtered to the allowed set when one is
// given; songs are sampled down to maxSongs in random order.
func (s *CatalogService) SongsForConfiguration(universeID string, allowedWorks []string, maxSongs int) ([]game.Song, []game.Work, error) {
	query := s.db.Where("universe_id = ?", universeID)
	if len(allowedWorks) > 0 {
		query = query.Where("id IN ?", allowedWorks)
	}

	var works []models.Work
	if err := query.Order("order_num ASC, title ASC").Find(&works).Error; err != nil {
		return nil, nil, err
	}
	if len(works) == 0 {
		return nil, nil, errors.New("no works found for this configuration")
	}

	workIDs := make([]string, 0, len(works))
	gameWorks := make([]game.Work, 0, len(works))
	for _, w := range works {
		workIDs = append(workIDs, w.ID)
		gameWorks = append(gameWorks, game.Work{
			ID:         w.ID,
			UniverseID: w.UniverseID,
			Title:      w.Title,
			OrderNum:   w.OrderNum,
		})
	}

	var songs []models.Song
	if err := s.db.Where("work_id IN ?", workIDs).Find(&songs).Error; err != nil {
		return nil, nil, err
	}

	rand.Shuffle(len(songs), func(i, j int) {
		songs[i], songs[j] = songs[j], songs[i]
	})
	if maxSongs > 0 && len(songs) > maxSongs {
		songs = songs[:maxSongs]
	}

	gameSongs := make([]game.Song, 0, len(songs))
	for _, song := range songs {
		gameSongs = append(gameSongs, game.Song{
			ID:               song.ID,
			Title:            song.Title,
			Artist:           song.Artist,
			WorkID:           song.WorkID,
			YoutubeID:        song.YoutubeID,
			AudioURL:         song.AudioURL,
			AudioURLReversed: song.AudioURLReversed,
			Duration:         song.DurationSec,
		})
	}
	return gameSongs, gameWorks, nil
}

type CatalogSong struct {
	ID               string  `json:"id,omitempty"`
	Title            string  `json:"title"`
	Artist           string  `json:"artist,omitempty"`
	YoutubeID        string  `json:"youtube_id,omitempty"`
	AudioURL         string  `json:"audio_url,omitempty"`
	AudioURLReversed string  `json:"audio_url_reversed,omitempty"`
	Duration         float64 `json:"duration,omitempty"`
}

type CatalogWork struct {
	ID       string        `json:"id,omitempty"`
	Title    string        `json:"title"`
	OrderNum int           `json:"order_num,omitempty"`
	Songs    []CatalogSong `json:"songs,omitempty"`
}

type CatalogUniverse struct {
	ID       string        `json:"id,omitempty"`
	Name     string        `json:"name"`
	OrderNum int           `json:"order_num,omitempty"`
	Works    []CatalogWork `json:"works,omitempty"`
}

type CatalogExport struct {
	Universes []CatalogUniverse `json:"universes"`
}

func (s *CatalogService) Export() (*CatalogExport, error) {
	universes, err := s.ListUniverses()
	if err != nil {
		return nil, err
	}

	out := &CatalogExport{}
	for _, u := range universes {
		cu := CatalogUniverse{ID: u.ID, Name: u.Name, OrderNum: u.OrderNum}

		works, err := s.ListWorks(u.ID)
		if err != nil {
			return nil, err
		}
		for _, w := range works {
			cw := CatalogWork{ID: w.ID, Title: w.Title, OrderNum: w.OrderNum}

			var songs []models.Song
			if err := s.db.Where("work_id = ?", w.ID).Order("title ASC").Find(&songs).Error; err != nil {
				return nil, err
			}
			for _, song := range songs {
				cw.Songs = append(cw.Songs, CatalogSong{
					ID:               song.ID,
					Title:            song.Title,
					Artist:           song.Artist,
					YoutubeID:        song.YoutubeID,
					AudioURL:         song.AudioURL,
					AudioURLReversed: song.AudioURLReversed,
					Duration:         song.DurationSec,
				})
			}
			cu.Works = append(cu.Works, cw)
		}
		out.Universes = append(out.Universes, cu)
	}
	return out, nil
}

// Import upserts a catalog dump. Entries without ids get fresh ones, so the
// same dump can seed a database or update an existing one.
func (s *CatalogService) Import(data *CatalogExport) (int, error) {
	imported := 0
	err := s.db.Transaction(func(tx *gorm.DB) error {
		for _, cu := range data.Universes {
			if cu.Name == "" {
				return errors.New("universe name required")
			}
			universe := models.Universe{ID: orNewID(cu.ID), Name: cu.Name, OrderNum: cu.OrderNum}
			if err := tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(&universe).Error; err != nil {
				return err
			}

			for _, cw := range cu.Works {
				if cw.Title == "" {
					return errors.New("work title required")
				}
				work := models.Work{
					ID:         orNewID(cw.ID),
					UniverseID: universe.ID,
					Title:      cw.Title,
					OrderNum:   cw.OrderNum,
				}
				if err := tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(&work).Error; err != nil {
					return err
				}

				for _, cs := range cw.Songs {
					if cs.Title == "" {
						return errors.New("song title required")
					}
					song := models.Song{
						ID:               orNewID(cs.ID),
						WorkID:           work.ID,
						Title:            cs.Title,
						Artist:           cs.Artist,
						YoutubeID:        cs.YoutubeID,
						AudioURL:         cs.AudioURL,
						AudioURLReversed: cs.AudioURLReversed,
						DurationSec:      cs.Duration,
					}
					if err := tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(&song).Error; err != nil {
						return err
					}
					imported++
				}
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return imported, nil
}

func orNewID(id string) string {
	if id != "" {
		return id
	}
	return uuid.NewString()
}
