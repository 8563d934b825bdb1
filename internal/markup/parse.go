package markup

import (
	"strconv"
	"strings"

	"golang.org/x/net/html"

	"github.com/KirkDiggler/etr-bot-discord/internal/domain/game"
	"github.com/KirkDiggler/etr-bot-discord/internal/errors"
)

// ParsedPool holds the dice recovered from die-pool markup.
type ParsedPool struct {
	Dice     []game.Die
	IsAttack bool
}

// Parse decodes die-pool markup back into structured dice. Nodes missing
// the die marker class or the index/value data attributes are skipped
// rather than failing the whole pool.
func Parse(src string) (*ParsedPool, error) {
	doc, err := html.Parse(strings.NewReader(src))
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse die markup")
	}

	pool := &ParsedPool{}
	walk(doc, pool)
	return pool, nil
}

func walk(n *html.Node, pool *ParsedPool) {
	if n.Type == html.ElementNode && n.Data == "li" {
		if d, isAttack, ok := parseDie(n); ok {
			pool.Dice = append(pool.Dice, d)
			if isAttack {
				pool.IsAttack = true
			}
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, pool)
	}
}

func parseDie(n *html.Node) (game.Die, bool, bool) {
	attrs := make(map[string]string, len(n.Attr))
	for _, a := range n.Attr {
		attrs[a.Key] = a.Val
	}

	classes := strings.Fields(attrs["class"])
	if !hasClass(classes, "die") {
		return game.Die{}, false, false
	}

	index, err := strconv.Atoi(attrs["data-die-index"])
	if err != nil {
		return game.Die{}, false, false
	}
	value, err := strconv.Atoi(attrs["data-die-value"])
	if err != nil {
		return game.Die{}, false, false
	}

	d := game.Die{
		Value:      value,
		Index:      index,
		Tier:       tierFromClasses(classes),
		Allocated:  attrs["data-allocated"] == "true",
		CrossedOut: attrs["data-crossed-out"] == "true",
	}
	return d, attrs["data-is-attack"] == "true", true
}

func hasClass(classes []string, want string) bool {
	for _, c := range classes {
		if c == want {
			return true
		}
	}
	return false
}

func tierFromClasses(classes []string) game.Tier {
	for _, c := range classes {
		switch game.Tier(c) {
		case game.TierCritical, game.TierSuccess, game.TierDiscard:
			return game.Tier(c)
		}
	}
	return game.TierDiscard
}

// Find locates a die by its full identity. The tier narrows the match so
// equal (index, value) pairs in different tiers never collide.
func (p *ParsedPool) Find(tier game.Tier, index, value int) *game.Die {
	for i := range p.Dice {
		d := &p.Dice[i]
		if d.Tier == tier && d.Index == index && d.Value == value {
			return d
		}
	}
	return nil
}

// FindAnyTier is the degraded fallback when the tier class is missing or
// mangled. It matches on index and value alone, so callers should log when
// they fall back to it.
func (p *ParsedPool) FindAnyTier(index, value int) *game.Die {
	for i := range p.Dice {
		d := &p.Dice[i]
		if d.Index == index && d.Value == value {
			return d
		}
	}
	return nil
}
