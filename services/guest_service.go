package services

import (
	"context"
	"sort"
	"strings"

	"hotel/errors"
	"hotel/models"
	"hotel/services/logger"
	"hotel/store"
	"hotel/validator"

	"github.com/fiam/gounidecode/unidecode"
	"github.com/schollz/closestmatch"
	"github.com/texttheater/golang-levenshtein/levenshtein"
	"golang.org/x/text/unicode/norm"
)

const defaultSuggestLimit = 5

// GuestService là Guest Directory. Gán phòng/reservation chỉ đi qua ReservationService.
type GuestService struct {
	store  store.Store
	logger logger.Logger
}

type GuestServiceOptions struct {
	Store  store.Store
	Logger logger.Logger
}

func NewGuestService(opts GuestServiceOptions) *GuestService {
	return &GuestService{
		store:  opts.Store,
		logger: opts.Logger,
	}
}

type GuestUpdate struct {
	FirstName      *string
	LastName       *string
	DateOfBirth    *string
	Gender         *string
	PassportNumber *string
}

func (s *GuestService) GetGuest(ctx context.Context, id uint) (*models.Guest, error) {
	guest, err := s.store.Repo(ctx).GetGuest(id)
	if err != nil {
		return nil, errors.DB("lỗi khi truy vấn khách", err)
	}
	if guest == nil {
		return nil, errors.NotFound("guest", id)
	}
	return guest, nil
}

func (s *GuestService) ListGuests(ctx context.Context) ([]models.Guest, error) {
	return s.findGuests(ctx, store.GuestFilter{})
}

// FindByLastName không phân biệt hoa thường.
func (s *GuestService) FindByLastName(ctx context.Context, lastName string) ([]models.Guest, error) {
	return s.findGuests(ctx, store.GuestFilter{LastName: strings.TrimSpace(lastName)})
}

func (s *GuestService) FindByPassportNumber(ctx context.Context, passport string) ([]models.Guest, error) {
	return s.findGuests(ctx, store.GuestFilter{PassportNumber: strings.TrimSpace(passport)})
}

func (s *GuestService) findGuests(ctx context.Context, filter store.GuestFilter) ([]models.Guest, error) {
	guests, err := s.store.Repo(ctx).FindGuests(filter)
	if err != nil {
		return nil, errors.DB("lỗi khi truy vấn danh sách khách", err)
	}
	if guests == nil {
		guests = []models.Guest{}
	}
	return guests, nil
}

func (s *GuestService) CreateGuest(ctx context.Context, guest *models.Guest) (*models.Guest, error) {
	guest.ID = 0
	guest.Release()
	if err := validator.ValidateGuest(guest); err != nil {
		return nil, err
	}

	if err := s.store.Repo(ctx).SaveGuest(guest); err != nil {
		return nil, errors.DB("lỗi khi lưu khách", err)
	}
	s.logger.Info("Đã tạo khách %s %s (id %d)", guest.FirstName, guest.LastName, guest.ID)
	return guest, nil
}

func (s *GuestService) UpdateGuest(ctx context.Context, id uint, update GuestUpdate) (*models.Guest, error) {
	var updated *models.Guest
	err := s.store.Transaction(ctx, func(repo store.Repository) error {
		guest, err := repo.GetGuest(id)
		if err != nil {
			return errors.DB("lỗi khi truy vấn khách", err)
		}
		if guest == nil {
			return errors.NotFound("guest", id)
		}

		if update.FirstName != nil {
			guest.FirstName = *update.FirstName
		}
		if update.LastName != nil {
			guest.LastName = *update.LastName
		}
		if update.DateOfBirth != nil {
			guest.DateOfBirth = *update.DateOfBirth
		}
		if update.Gender != nil {
			guest.Gender = *update.Gender
		}
		if update.PassportNumber != nil {
			guest.PassportNumber = *update.PassportNumber
		}

		if err := validator.ValidateGuest(guest); err != nil {
			return err
		}
		if err := repo.SaveGuest(guest); err != nil {
			return errors.DB("lỗi khi lưu khách", err)
		}
		updated = guest
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// DeleteGuest từ chối xóa khách đang giữ reservation hiện tại.
func (s *GuestService) DeleteGuest(ctx context.Context, id uint) error {
	return s.store.Transaction(ctx, func(repo store.Repository) error {
		guest, err := repo.GetGuest(id)
		if err != nil {
			return errors.DB("lỗi khi truy vấn khách", err)
		}
		if guest == nil {
			return errors.NotFound("guest", id)
		}
		if guest.ReservationID != nil {
			return errors.NewAppError(errors.ErrCodeInvalidState, "guest still holds a current reservation", nil)
		}
		if err := repo.DeleteGuest(id); err != nil {
			return errors.DB("lỗi khi xóa khách", err)
		}
		return nil
	})
}

// SuggestLastNames gợi ý họ gần đúng nhất với query, bỏ dấu trước khi so sánh.
func (s *GuestService) SuggestLastNames(ctx context.Context, query string, limit int) ([]string, error) {
	if limit <= 0 {
		limit = defaultSuggestLimit
	}
	query = normalizeName(query)
	if query == "" {
		return []string{}, nil
	}

	guests, err := s.findGuests(ctx, store.GuestFilter{})
	if err != nil {
		return nil, err
	}

	// tên đã chuẩn hóa -> tên gốc đầu tiên gặp
	originals := make(map[string]string)
	keywords := make([]string, 0, len(guests))
	for _, g := range guests {
		key := normalizeName(g.LastName)
		if key == "" {
			continue
		}
		if _, ok := originals[key]; !ok {
			originals[key] = g.LastName
			keywords = append(keywords, key)
		}
	}
	if len(keywords) == 0 {
		return []string{}, nil
	}

	candidates := closestmatch.New(keywords, []int{2, 3}).ClosestN(query, limit*3)
	if len(candidates) == 0 {
		candidates = keywords
	}

	type scored struct {
		key   string
		score float64
	}
	ranked := make([]scored, 0, len(candidates))
	for _, key := range candidates {
		if _, ok := originals[key]; !ok {
			continue
		}
		ranked = append(ranked, scored{key: key, score: nameSimilarity(query, key)})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].score != ranked[j].score {
			return ranked[i].score > ranked[j].score
		}
		return ranked[i].key < ranked[j].key
	})

	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	result := make([]string, 0, len(ranked))
	for _, r := range ranked {
		result = append(result, originals[r.key])
	}
	return result, nil
}

// Chuẩn hóa về NFC trước để tên nhập dạng tổ hợp dấu cũng bỏ dấu được
func normalizeName(input string) string {
	return strings.ToLower(strings.TrimSpace(unidecode.Unidecode(norm.NFC.String(input))))
}

// Độ tương đồng trong [0, 1] theo khoảng cách Levenshtein
func nameSimilarity(a, b string) float64 {
	distance := levenshtein.DistanceForStrings([]rune(a), []rune(b), levenshtein.DefaultOptions)
	maxLen := len([]rune(a))
	if l := len([]rune(b)); l > maxLen {
		maxLen = l
	}
	if maxLen == 0 {
		return 1.0
	}
	return 1.0 - float64(distance)/float64(maxLen)
}
