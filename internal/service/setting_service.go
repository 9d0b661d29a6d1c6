package service

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/concho-nutrition/storefront/internal/constants"
	"github.com/concho-nutrition/storefront/internal/models"
	"github.com/concho-nutrition/storefront/internal/repository"
)

// SettingService reads and writes runtime-tunable settings.
type SettingService struct {
	repo repository.SettingRepository
}

// NewSettingService creates a setting service.
func NewSettingService(repo repository.SettingRepository) *SettingService {
	return &SettingService{repo: repo}
}

// GetByKey fetches a setting value.
func (s *SettingService) GetByKey(key string) (models.JSON, error) {
	setting, err := s.repo.GetByKey(key)
	if err != nil {
		return nil, err
	}
	if setting == nil {
		return nil, nil
	}
	return setting.ValueJSON, nil
}

// Update replaces a setting value.
func (s *SettingService) Update(key string, value map[string]interface{}) (models.JSON, error) {
	setting, err := s.repo.Upsert(key, models.JSON(value))
	if err != nil {
		return nil, err
	}
	return setting.ValueJSON, nil
}

// GetFreeShippingThreshold returns the threshold from the checkout
// setting when present, else the supplied default.
func (s *SettingService) GetFreeShippingThreshold(defaultValue float64) (float64, error) {
	if s == nil {
		return defaultValue, nil
	}
	value, err := s.GetByKey(constants.SettingKeyCheckout)
	if err != nil {
		return defaultValue, err
	}
	if value == nil {
		return defaultValue, nil
	}
	raw, ok := value["free_shipping_threshold"]
	if !ok {
		return defaultValue, nil
	}
	threshold, err := parseSettingFloat(raw)
	if err != nil || threshold <= 0 {
		return defaultValue, nil
	}
	return threshold, nil
}

func parseSettingFloat(value interface{}) (float64, error) {
	switch v := value.(type) {
	case float64:
		return v, nil
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case json.Number:
		return v.Float64()
	case string:
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			return 0, fmt.Errorf("empty string")
		}
		return strconv.ParseFloat(trimmed, 64)
	default:
		return 0, fmt.Errorf("unsupported value type")
	}
}
