package rest

import (
	"time"

	"github.com/consejoapp/consejo-backend/internal/domain"
)

// Shared response DTOs. Handlers convert domain entities here so the wire
// format stays stable when domain structs change.

type userResponse struct {
	ID        string  `json:"id"`
	Email     string  `json:"email,omitempty"`
	Username  string  `json:"username"`
	Karma     int     `json:"karma"`
	Badge     string  `json:"badge"`
	AvatarURL *string `json:"avatarUrl,omitempty"`
}

func toUserResponse(u *domain.User) userResponse {
	return userResponse{
		ID:        u.ID.String(),
		Email:     u.Email,
		Username:  u.Username,
		Karma:     u.Karma,
		Badge:     string(u.Badge),
		AvatarURL: u.AvatarURL,
	}
}

// toAuthorResponse is toUserResponse without the email. Decision and
// comment authors are public, their email is not.
func toAuthorResponse(u *domain.User) *userResponse {
	if u == nil {
		return nil
	}
	resp := toUserResponse(u)
	resp.Email = ""
	return &resp
}

type optionResponse struct {
	ID         string  `json:"id"`
	Text       string  `json:"text"`
	VotesCount int     `json:"votesCount"`
	Percentage float64 `json:"percentage"`
}

type decisionResponse struct {
	ID            string           `json:"id"`
	Title         string           `json:"title"`
	Context       string           `json:"context"`
	Type          string           `json:"type"`
	Status        string           `json:"status"`
	IsAnonymous   bool             `json:"isAnonymous"`
	ExpiresAt     time.Time        `json:"expiresAt"`
	FinalOptionID *string          `json:"finalOptionId,omitempty"`
	Options       []optionResponse `json:"options"`
	Author        *userResponse    `json:"author,omitempty"`
	TotalVotes    int              `json:"totalVotes"`
	CreatedAt     time.Time        `json:"createdAt"`
}

func toDecisionResponse(d *domain.Decision) decisionResponse {
	options := make([]optionResponse, len(d.Options))
	for n, opt := range d.Options {
		options[n] = optionResponse{
			ID:         opt.ID.String(),
			Text:       opt.Text,
			VotesCount: opt.VotesCount,
			Percentage: domain.Percentage(opt.VotesCount, d.TotalVotes),
		}
	}

	resp := decisionResponse{
		ID:          d.ID.String(),
		Title:       d.Title,
		Context:     d.Context,
		Type:        string(d.Type),
		Status:      string(d.Status),
		IsAnonymous: d.IsAnonymous,
		ExpiresAt:   d.ExpiresAt,
		Options:     options,
		TotalVotes:  d.TotalVotes,
		CreatedAt:   d.CreatedAt,
	}
	if d.FinalOptionID != nil {
		id := d.FinalOptionID.String()
		resp.FinalOptionID = &id
	}
	if !d.IsAnonymous {
		resp.Author = toAuthorResponse(d.Author)
	}
	return resp
}

func toDecisionResponses(decisions []*domain.Decision) []decisionResponse {
	out := make([]decisionResponse, len(decisions))
	for n, d := range decisions {
		out[n] = toDecisionResponse(d)
	}
	return out
}

type voteResponse struct {
	ID         string    `json:"id"`
	DecisionID string    `json:"decisionId"`
	OptionID   string    `json:"optionId"`
	Comment    *string   `json:"comment,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

func toVoteResponse(v *domain.Vote) voteResponse {
	return voteResponse{
		ID:         v.ID.String(),
		DecisionID: v.DecisionID.String(),
		OptionID:   v.OptionID.String(),
		Comment:    v.Comment,
		CreatedAt:  v.CreatedAt,
	}
}

type commentResponse struct {
	ID        string        `json:"id"`
	Content   string        `json:"content"`
	Author    *userResponse `json:"author,omitempty"`
	CreatedAt time.Time     `json:"createdAt"`
}

func toCommentResponse(c *domain.Comment) commentResponse {
	return commentResponse{
		ID:        c.ID.String(),
		Content:   c.Content,
		Author:    toAuthorResponse(c.Author),
		CreatedAt: c.CreatedAt,
	}
}
