package profiles

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// Store persists profiles.
type Store interface {
	List(ctx context.Context) ([]Profile, error)
	Get(ctx context.Context, id string) (*Profile, error)
	Save(ctx context.Context, p *Profile) error
	Delete(ctx context.Context, id string) error
}

// record is the row layout of the profiles table.
type record struct {
	ID        string `gorm:"primaryKey;size:36"`
	Name      string `gorm:"size:255;not null"`
	Mode      string `gorm:"size:16;not null"`
	URL       string `gorm:"size:1024"`
	Host      string `gorm:"size:255"`
	Port      int
	Database  string `gorm:"size:255"`
	Token     string `gorm:"type:text"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (record) TableName() string {
	return "spacebase_profiles"
}

// GormStore keeps profiles in a SQL database through gorm.
type GormStore struct {
	db     *gorm.DB
	cipher *Cipher
	log    *slog.Logger
}

var _ Store = (*GormStore)(nil)

// NewGormStore migrates the profiles table and returns a store encrypting
// tokens with a key derived from secret.
func NewGormStore(db *gorm.DB, secret string) (*GormStore, error) {
	if db == nil {
		return nil, errors.New("db is required")
	}
	if err := db.AutoMigrate(&record{}); err != nil {
		return nil, errors.Wrap(err, "failed to migrate profiles table")
	}
	return &GormStore{db: db, cipher: NewCipher(secret), log: slog.Default()}, nil
}

// WithLogger sets the logger used to report unreadable profiles.
func (s *GormStore) WithLogger(logger *slog.Logger) *GormStore {
	if logger != nil {
		s.log = logger
	}
	return s
}

// List returns every profile sorted by name. A profile whose token cannot be
// decrypted is returned without its token and with TokenUnreadable set.
func (s *GormStore) List(ctx context.Context) ([]Profile, error) {
	var rows []record
	if err := s.db.WithContext(ctx).Find(&rows).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list profiles")
	}

	out := make([]Profile, 0, len(rows))
	for _, row := range rows {
		p, err := s.toProfile(row)
		if err != nil {
			s.log.Warn("failed to read profile token",
				slog.String("profile", row.ID),
				slog.String("error", err.Error()),
			)
			p = fromRecord(row, "")
			p.TokenUnreadable = true
		}
		out = append(out, p)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
	})
	return out, nil
}

// Get returns one profile or ErrNotFound.
func (s *GormStore) Get(ctx context.Context, id string) (*Profile, error) {
	if strings.TrimSpace(id) == "" {
		return nil, ErrNotFound
	}

	var row record
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to load profile")
	}

	p, err := s.toProfile(row)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Save inserts p, or updates it when p.ID names an existing profile. A new id
// is assigned when p.ID is empty.
func (s *GormStore) Save(ctx context.Context, p *Profile) error {
	if p == nil {
		return errors.New("profile is required")
	}
	if err := p.Validate(); err != nil {
		return err
	}

	token, err := s.cipher.Encrypt(p.Token)
	if err != nil {
		return errors.Wrap(err, "failed to encrypt token")
	}

	now := time.Now().UTC()
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now

	row := record{
		ID:        p.ID,
		Name:      strings.TrimSpace(p.Name),
		Mode:      p.Mode,
		URL:       strings.TrimSpace(p.URL),
		Host:      strings.TrimSpace(p.Host),
		Port:      p.Port,
		Database:  strings.TrimSpace(p.Database),
		Token:     token,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}

	var existing record
	err = s.db.WithContext(ctx).Where("id = ?", p.ID).First(&existing).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
			return errors.Wrap(err, "failed to create profile")
		}
	case err != nil:
		return errors.Wrap(err, "failed to load profile")
	default:
		row.CreatedAt = existing.CreatedAt
		p.CreatedAt = existing.CreatedAt
		if err := s.db.WithContext(ctx).Save(&row).Error; err != nil {
			return errors.Wrap(err, "failed to update profile")
		}
	}
	return nil
}

// Delete removes a profile; unknown ids yield ErrNotFound.
func (s *GormStore) Delete(ctx context.Context, id string) error {
	res := s.db.WithContext(ctx).Where("id = ?", id).Delete(&record{})
	if res.Error != nil {
		return errors.Wrap(res.Error, "failed to delete profile")
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *GormStore) toProfile(row record) (Profile, error) {
	token, err := s.cipher.Decrypt(row.Token)
	if err != nil {
		return Profile{}, errors.Wrapf(err, "profile %s", row.ID)
	}
	return fromRecord(row, token), nil
}

func fromRecord(row record, token string) Profile {
	return Profile{
		ID:        row.ID,
		Name:      row.Name,
		Mode:      row.Mode,
		URL:       row.URL,
		Host:      row.Host,
		Port:      row.Port,
		Database:  row.Database,
		Token:     token,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
}
