package upstream

import (
	"context"
	"fmt"
	"net/http"

	"github.com/mmeshcher/ucstore/internal/model"
)

// FetchContacts запрашивает контакты поддержки у сервиса настроек.
func (c *Client) FetchContacts(ctx context.Context) (model.Contacts, error) {
	var res model.Contacts
	if err := c.doJSON(ctx, http.MethodGet, c.endpoints.SettingsURL, nil, nil, &res); err != nil {
		return model.Contacts{}, fmt.Errorf("fetch settings: %w", err)
	}
	return res, nil
}
