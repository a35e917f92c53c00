package systems

import (
	"fmt"
	"strings"

	"github.com/automoto/gaitkit/components"
	"github.com/automoto/gaitkit/config"
	"github.com/automoto/gaitkit/internal/log"
	"github.com/quasilyte/gdata"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
	"go.uber.org/zap"
)

// ItemStore is the subset of gdata.Manager the calibration store needs.
type ItemStore interface {
	LoadItem(key string) ([]byte, error)
	SaveItem(key string, data []byte) error
}

// CalibrationStore keeps measured strides and hips height between runs as
// one JSON document keyed by profile:
//
//	{"male": {"hips_to_feet": 1.02, "strides": {"walk": {"forwards": 0.91}}}}
type CalibrationStore struct {
	items ItemStore
	key   string
}

// OpenCalibrationStore opens the per-user gdata store.
func OpenCalibrationStore() (*CalibrationStore, error) {
	m, err := gdata.Open(gdata.Config{
		AppName: config.Storage.AppName,
	})
	if err != nil {
		return nil, fmt.Errorf("systems: open calibration store: %w", err)
	}
	return NewCalibrationStore(m), nil
}

func NewCalibrationStore(items ItemStore) *CalibrationStore {
	return &CalibrationStore{items: items, key: config.Storage.CalibrationKey}
}

func (s *CalibrationStore) document() ([]byte, error) {
	data, err := s.items.LoadItem(s.key)
	if err != nil {
		return nil, fmt.Errorf("systems: load calibration: %w", err)
	}
	return data, nil
}

func strideDirection(k components.StrideKey) string {
	if k.Backwards {
		return "backwards"
	}
	return "forwards"
}

// escapePath quotes the characters gjson treats as path syntax.
func escapePath(s string) string {
	r := strings.NewReplacer(".", `\.`, "*", `\*`, "?", `\?`)
	return r.Replace(s)
}

// Load applies the saved calibration of the avatar's profile. A missing
// document or profile leaves the avatar untouched.
func (s *CalibrationStore) Load(avatar *components.AvatarData) error {
	data, err := s.document()
	if err != nil {
		return err
	}
	if len(data) == 0 || avatar.Profile == nil {
		return nil
	}
	if !gjson.ValidBytes(data) {
		return fmt.Errorf("systems: load calibration: malformed document")
	}

	root := gjson.GetBytes(data, escapePath(avatar.Profile.Name))
	if !root.Exists() {
		return nil
	}
	if h := root.Get("hips_to_feet"); h.Exists() && h.Float() > 0 {
		avatar.HipsToFeet = h.Float()
		avatar.HipsCalibrated = true
	}
	loaded := 0
	root.Get("strides").ForEach(func(slotName, dirs gjson.Result) bool {
		slot, ok := config.ParseSlot(slotName.String())
		if !ok || !slot.Cyclic() {
			return true
		}
		dirs.ForEach(func(dir, v gjson.Result) bool {
			if v.Float() <= 0 {
				return true
			}
			d := config.DirectionForwards
			if dir.String() == "backwards" {
				d = config.DirectionBackwards
			}
			avatar.SetStrideLength(slot, d, v.Float())
			loaded++
			return true
		})
		return true
	})
	avatar.StrideDirty = false

	log.Debug("calibration loaded",
		zap.String("profile", avatar.Profile.Name),
		zap.Int("strides", loaded))
	return nil
}

// Save writes the avatar's calibration back, leaving other profiles in the
// document intact.
func (s *CalibrationStore) Save(avatar *components.AvatarData) error {
	if avatar.Profile == nil {
		return nil
	}
	data, err := s.document()
	if err != nil {
		return err
	}
	if len(data) == 0 || !gjson.ValidBytes(data) {
		data = []byte("{}")
	}

	profile := escapePath(avatar.Profile.Name)
	if avatar.HipsCalibrated {
		data, err = sjson.SetBytes(data, profile+".hips_to_feet", avatar.HipsToFeet)
		if err != nil {
			return fmt.Errorf("systems: save calibration: %w", err)
		}
	}
	for k, v := range avatar.Strides {
		path := profile + ".strides." + k.Slot.String() + "." + strideDirection(k)
		data, err = sjson.SetBytes(data, path, v)
		if err != nil {
			return fmt.Errorf("systems: save calibration: %w", err)
		}
	}

	if err := s.items.SaveItem(s.key, data); err != nil {
		return fmt.Errorf("systems: save calibration: %w", err)
	}
	avatar.StrideDirty = false
	log.Debug("calibration saved",
		zap.String("profile", avatar.Profile.Name),
		zap.Int("strides", len(avatar.Strides)))
	return nil
}
