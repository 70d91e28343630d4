// Package scoring calcula a pontuação de um post a partir do engajamento
// público e do alcance do autor.
package scoring

import (
	"math"

	"github.com/vfg2006/creator-campaign-api/internal/domain"
)

type Weights struct {
	Favorite float64
	Reply    float64
	Reshare  float64
	Quote    float64
}

type Params struct {
	Weights Weights

	MinRawUnits float64
	ReachFloor  float64
	ReachCeil   float64
	FairnessExp float64

	PerPostExponent float64
	PerPostCap      float64

	ReplyHeavyShare  float64
	ReplyHeavyBonus  float64
	QuoteHeavyShare  float64
	QuoteHeavyBonus  float64
	LikeHeavyShare   float64
	LikeHeavyPenalty float64
	MinMultiplier    float64
	MaxMultiplier    float64

	MinTextChars   int
	MinUniqueWords int
}

func DefaultParams() Params {
	return Params{
		Weights: Weights{
			Favorite: 1.0,
			Reply:    4.0,
			Reshare:  2.5,
			Quote:    3.0,
		},
		MinRawUnits:      6,
		ReachFloor:       500,
		ReachCeil:        150_000,
		FairnessExp:      0.55,
		PerPostExponent:  0.92,
		PerPostCap:       300,
		ReplyHeavyShare:  0.20,
		ReplyHeavyBonus:  0.10,
		QuoteHeavyShare:  0.15,
		QuoteHeavyBonus:  0.05,
		LikeHeavyShare:   0.80,
		LikeHeavyPenalty: -0.10,
		MinMultiplier:    0.85,
		MaxMultiplier:    1.20,
		MinTextChars:     20,
		MinUniqueWords:   6,
	}
}

// Engine é puro e seguro para uso concorrente.
type Engine struct {
	params Params
}

func NewEngine(params Params) *Engine {
	return &Engine{params: params}
}

func NewDefaultEngine() *Engine {
	return NewEngine(DefaultParams())
}

func (e *Engine) Params() Params {
	return e.params
}

// Score devolve a pontuação do post em [0, PerPostCap].
func (e *Engine) Score(text string, engagement domain.Engagement, authorReach int64) float64 {
	p := e.params

	if textLength(text) < p.MinTextChars {
		return 0
	}
	if uniqueWordCount(text) < p.MinUniqueWords {
		return 0
	}

	likes := safeCount(engagement.Favorites)
	replies := safeCount(engagement.Replies)
	reshares := safeCount(engagement.Reshares)
	quotes := safeCount(engagement.Quotes)

	rawUnits := p.Weights.Favorite*likes +
		p.Weights.Reply*replies +
		p.Weights.Reshare*reshares +
		p.Weights.Quote*quotes

	if rawUnits < p.MinRawUnits {
		return 0
	}

	reach := clamp(float64(authorReach), p.ReachFloor, p.ReachCeil)
	normalized := rawUnits / math.Pow(reach, p.FairnessExp)

	postScore := math.Pow(normalized, p.PerPostExponent)
	postScore *= e.qualityMultiplier(likes, replies, reshares, quotes)

	if math.IsNaN(postScore) || math.IsInf(postScore, 0) || postScore < 0 {
		return 0
	}

	return math.Min(p.PerPostCap, postScore)
}

func (e *Engine) qualityMultiplier(likes, replies, reshares, quotes float64) float64 {
	p := e.params
	mult := 1.0

	total := likes + replies + reshares + quotes
	if total > 0 {
		if replies/total >= p.ReplyHeavyShare {
			mult += p.ReplyHeavyBonus
		}
		if quotes/total >= p.QuoteHeavyShare {
			mult += p.QuoteHeavyBonus
		}
		if likes/total >= p.LikeHeavyShare {
			mult += p.LikeHeavyPenalty
		}
	}

	return clamp(mult, p.MinMultiplier, p.MaxMultiplier)
}

func safeCount(n int64) float64 {
	if n < 0 {
		return 0
	}
	return float64(n)
}

func clamp(x, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, x))
}
