package client

import (
	"encoding/json"
	"strconv"

	pkgerrors "github.com/pkg/errors"

	"github.com/tlind/battray/pkg/config"
	"github.com/tlind/battray/pkg/powerinfo"
)

func (c *Client) GetSnapshot() (*powerinfo.Snapshot, error) {
	ret, err := c.Get("/snapshot")
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to get battery snapshot")
	}

	var snap powerinfo.Snapshot
	if err := json.Unmarshal([]byte(ret), &snap); err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to unmarshal battery snapshot")
	}

	return &snap, nil
}

func (c *Client) GetPercentage() (int, error) {
	ret, err := c.Get("/percentage")
	if err != nil {
		return 0, pkgerrors.Wrapf(err, "failed to get battery percentage")
	}
	pct, err := strconv.Atoi(ret)
	if err != nil {
		return 0, pkgerrors.Wrapf(err, "failed to unmarshal battery percentage")
	}
	return pct, nil
}

func (c *Client) GetStatus() (string, error) {
	ret, err := c.Get("/status")
	if err != nil {
		return "", pkgerrors.Wrapf(err, "failed to get charging status")
	}
	return unquote(ret), nil
}

func (c *Client) GetTimeEstimate() (string, error) {
	ret, err := c.Get("/time-estimate")
	if err != nil {
		return "", pkgerrors.Wrapf(err, "failed to get time estimate")
	}
	return unquote(ret), nil
}

func (c *Client) GetIcon() (string, error) {
	ret, err := c.Get("/icon")
	if err != nil {
		return "", pkgerrors.Wrapf(err, "failed to get icon name")
	}
	return unquote(ret), nil
}

func (c *Client) Refresh() (string, error) {
	return c.Send("POST", "/refresh", "")
}

func (c *Client) SetLowThreshold(pct int) (string, error) {
	return c.Put("/low-threshold", strconv.Itoa(pct))
}

func (c *Client) GetProfile() (string, error) {
	ret, err := c.Get("/profile")
	if err != nil {
		return "", pkgerrors.Wrapf(err, "failed to get power profile")
	}
	return unquote(ret), nil
}

func (c *Client) SetProfile(mode string) (string, error) {
	payload, err := json.Marshal(mode)
	if err != nil {
		return "", err
	}
	return c.Put("/profile", string(payload))
}

func (c *Client) GetBrightness() (int, error) {
	ret, err := c.Get("/brightness")
	if err != nil {
		return 0, pkgerrors.Wrapf(err, "failed to get brightness")
	}
	pct, err := strconv.Atoi(ret)
	if err != nil {
		return 0, pkgerrors.Wrapf(err, "failed to unmarshal brightness")
	}
	return pct, nil
}

func (c *Client) SetBrightness(pct int) (string, error) {
	return c.Put("/brightness", strconv.Itoa(pct))
}

func (c *Client) GetConfig() (*config.RawFileConfig, error) {
	ret, err := c.Get("/config")
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to get config")
	}

	var conf config.RawFileConfig
	if err := json.Unmarshal([]byte(ret), &conf); err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to unmarshal config")
	}

	return &conf, nil
}

func (c *Client) GetVersion() (string, error) {
	ret, err := c.Get("/version")
	if err != nil {
		return "", pkgerrors.Wrapf(err, "failed to get version")
	}
	return unquote(ret), nil
}

// unquote strips the quotes around a JSON string response. I don't want
// to use a JSON decoder just for this.
func unquote(s string) string {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return s[1 : len(s)-1]
	}
	return s
}
