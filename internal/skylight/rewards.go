package skylight

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
)

// Reward is something family members can redeem points for.
type Reward struct {
	ID         string
	Attributes RewardAttributes
}

type RewardAttributes struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Points      int    `json:"points"`
}

// RewardProfile tracks one family member's point balance.
type RewardProfile struct {
	ID         string
	Attributes RewardProfileAttributes
}

type RewardProfileAttributes struct {
	Name   string `json:"name"`
	Points int    `json:"points"`
}

// RewardParams is the flat body for reward creation.
type RewardParams struct {
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Points      int      `json:"points"`
	CategoryIDs []string `json:"category_ids,omitempty"`
}

type rewardRecord struct {
	ID         string           `json:"id"`
	Attributes RewardAttributes `json:"attributes"`
}

// GetRewards returns the available rewards.
func (c *Client) GetRewards(ctx context.Context) ([]Reward, error) {
	data, err := c.do(ctx, http.MethodGet, "/api/frames/{frame}/rewards", nil, nil)
	if err != nil {
		return nil, err
	}

	var doc struct {
		Data []rewardRecord `json:"data"`
	}
	if err := decode(data, &doc); err != nil {
		return nil, err
	}

	rewards := make([]Reward, 0, len(doc.Data))
	for _, r := range doc.Data {
		rewards = append(rewards, Reward{ID: r.ID, Attributes: r.Attributes})
	}
	return rewards, nil
}

// GetRewardProfiles returns each member's point balance.
func (c *Client) GetRewardProfiles(ctx context.Context) ([]RewardProfile, error) {
	data, err := c.do(ctx, http.MethodGet, "/api/frames/{frame}/reward_profiles", nil, nil)
	if err != nil {
		return nil, err
	}

	var doc struct {
		Data []struct {
			ID         string                  `json:"id"`
			Attributes RewardProfileAttributes `json:"attributes"`
		} `json:"data"`
	}
	if err := decode(data, &doc); err != nil {
		return nil, err
	}

	profiles := make([]RewardProfile, 0, len(doc.Data))
	for _, r := range doc.Data {
		profiles = append(profiles, RewardProfile{ID: r.ID, Attributes: r.Attributes})
	}
	return profiles, nil
}

// CreateReward creates a reward from flat fields. When category
// associations are included the API sometimes answers with an array
// instead of a single object; both shapes are accepted and a one-element
// array is unwrapped.
func (c *Client) CreateReward(ctx context.Context, params RewardParams) (*Reward, error) {
	data, err := c.do(ctx, http.MethodPost, "/api/frames/{frame}/rewards", nil, params)
	if err != nil {
		return nil, err
	}

	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := decode(data, &envelope); err != nil {
		return nil, err
	}

	record, err := unwrapRewardData(envelope.Data)
	if err != nil {
		return nil, err
	}
	return &Reward{ID: record.ID, Attributes: record.Attributes}, nil
}

// UpdateRewardPoints sets a member's point balance.
func (c *Client) UpdateRewardPoints(ctx context.Context, profileID string, points int) (*RewardProfile, error) {
	body := map[string]int{"points": points}
	data, err := c.do(ctx, http.MethodPut, "/api/frames/{frame}/reward_profiles/"+url.PathEscape(profileID), nil, body)
	if err != nil {
		return nil, err
	}

	var doc struct {
		Data struct {
			ID         string                  `json:"id"`
			Attributes RewardProfileAttributes `json:"attributes"`
		} `json:"data"`
	}
	if err := decode(data, &doc); err != nil {
		return nil, err
	}
	return &RewardProfile{ID: doc.Data.ID, Attributes: doc.Data.Attributes}, nil
}

// unwrapRewardData accepts either a single resource object or a
// non-empty array of them, returning the first.
func unwrapRewardData(raw json.RawMessage) (*rewardRecord, error) {
	var single rewardRecord
	if err := json.Unmarshal(raw, &single); err == nil && single.ID != "" {
		return &single, nil
	}

	var many []rewardRecord
	if err := json.Unmarshal(raw, &many); err != nil {
		return nil, &ParseError{Err: fmt.Errorf("reward response: %w", err)}
	}
	if len(many) == 0 {
		return nil, &ParseError{Err: fmt.Errorf("reward response is an empty array")}
	}
	return &many[0], nil
}
