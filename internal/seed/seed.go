// Package seed загружает начальное состояние реестра: счета и список известных пользователей.
package seed

import (
	"bytes"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/goccy/go-json"
	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/fsdevblog/bank-ledger/internal/domain"
)

var ErrUnsupportedFormat = errors.New("unsupported seed file format")

type Account struct {
	ID      int64           `json:"id"      toml:"id"      yaml:"id"`
	Balance decimal.Decimal `json:"balance" toml:"balance" yaml:"balance"`
}

type Data struct {
	Usernames []string  `json:"usernames" toml:"usernames" yaml:"usernames"`
	Accounts  []Account `json:"accounts"  toml:"accounts"  yaml:"accounts"`
}

// Load читает файл path. Формат определяется расширением: .yaml/.yml, .toml, .json.
// Пустой path означает пустое начальное состояние.
func Load(path string) (*Data, error) {
	if path == "" {
		return &Data{}, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading seed file %s", path)
	}

	data, err := Decode(filepath.Ext(path), raw)
	if err != nil {
		return nil, errors.WithMessagef(err, "seed file %s", path)
	}
	return data, nil
}

// Decode разбирает raw в формате, заданном расширением ext (с точкой или без).
func Decode(ext string, raw []byte) (*Data, error) {
	var data Data
	var err error

	switch strings.ToLower(strings.TrimPrefix(ext, ".")) {
	case "yaml", "yml":
		err = yaml.Unmarshal(raw, &data)
	case "toml":
		err = toml.NewDecoder(bytes.NewReader(raw)).DisallowUnknownFields().Decode(&data)
	case "json":
		err = json.Unmarshal(raw, &data)
	default:
		return nil, errors.Wrapf(ErrUnsupportedFormat, "extension %q", ext)
	}
	if err != nil {
		return nil, errors.Wrap(err, "decoding seed")
	}
	return &data, nil
}

// Merge добавляет имена пользователей, пропуская уже известные и пустые.
func (d *Data) Merge(usernames []string) {
	for _, username := range usernames {
		username = strings.TrimSpace(username)
		if username == "" || slices.Contains(d.Usernames, username) {
			continue
		}
		d.Usernames = append(d.Usernames, username)
	}
}

// DomainAccounts конвертирует счета в доменные модели с сохранением порядка.
func (d *Data) DomainAccounts() []domain.Account {
	out := make([]domain.Account, len(d.Accounts))
	for i, acc := range d.Accounts {
		out[i] = domain.Account{ID: acc.ID, Balance: acc.Balance}
	}
	return out
}
