package fields

import (
	"errors"
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// TableHolder serves the current alias table. The table ships with built-in
// defaults and may be overridden from a fields.yml config file, reloaded on
// change.
type TableHolder struct {
	current atomic.Value // holds Table
}

func NewTableHolder(log *zap.Logger) (*TableHolder, error) {
	v := viper.New()

	v.SetConfigName("fields")
	v.SetConfigType("yml")
	v.AddConfigPath("/etc/formfill")
	v.AddConfigPath(".")

	holder := &TableHolder{}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
		holder.current.Store(DefaultTable())
		return holder, nil
	}

	table, err := unmarshalTable(v)
	if err != nil {
		return nil, err
	}
	holder.current.Store(table)

	v.WatchConfig()
	v.OnConfigChange(func(e fsnotify.Event) {
		updated, err := unmarshalTable(v)
		if err != nil {
			log.Warn("invalid alias table ignored", zap.String("file", e.Name), zap.Error(err))
			return
		}
		holder.current.Store(updated)
		log.Info("alias table reloaded", zap.String("file", e.Name))
	})

	return holder, nil
}

func (h *TableHolder) Get() Table {
	return h.current.Load().(Table)
}

func unmarshalTable(v *viper.Viper) (Table, error) {
	var table Table
	if err := v.UnmarshalKey("fields", &table); err != nil {
		return nil, err
	}
	if err := validateTable(table); err != nil {
		return nil, err
	}
	return table, nil
}

func validateTable(table Table) error {
	if len(table) == 0 {
		return errors.New("fields cannot be empty")
	}
	seen := make(map[string]bool, len(table))
	for _, field := range table {
		key := strings.TrimSpace(field.Key)
		if key == "" {
			return errors.New("field key cannot be empty")
		}
		if seen[key] {
			return fmt.Errorf("duplicate field key %q", key)
		}
		seen[key] = true
		if len(field.Aliases) == 0 {
			return fmt.Errorf("field %q has no aliases", key)
		}
	}
	return nil
}
