package chat

import (
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
)

// Generator builds synthetic events by sampling the fixed lookup tables with replacement.
// A Generator is not safe for concurrent use; callers sharing one must serialize access.
type Generator struct {
	rnd *rand.Rand

	// Now and NewID may be replaced to make generated events reproducible.
	Now   func() time.Time
	NewID func() string
}

// NewGenerator creates a Generator drawing from rnd. A nil rnd means an unseeded source.
func NewGenerator(rnd *rand.Rand) *Generator {
	if rnd == nil {
		rnd = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Generator{
		rnd:   rnd,
		Now:   time.Now,
		NewID: uuid.NewString,
	}
}

// Generate returns one event of the given kind. For KindSuperChat the optional tier selects the tier table entry.
// Unknown kinds fall back to KindViewer.
func (g *Generator) Generate(kind Kind, tier ...int) Event {
	switch kind {
	case KindSuperChat:
		level := MinTier
		if len(tier) > 0 {
			level = tier[0]
		}
		return g.SuperChat(level)
	case KindMembership:
		return g.Membership()
	case KindSticker:
		return g.Sticker()
	default:
		return g.Chat(kind)
	}
}

// Chat returns a plain message from one of the four roles.
func (g *Generator) Chat(kind Kind) Event {
	if !kind.IsChat() {
		kind = KindViewer
	}
	table := roleTables[kind]
	e := g.base(kind)
	e.Author = pick(g.rnd, table.Authors)
	e.Message = pick(g.rnd, table.Messages)
	e.Color = table.Color
	e.Badge = table.Badge
	return e
}

// SuperChat returns a paid message. Levels outside MinTier..MaxTier are treated as tier 1.
func (g *Generator) SuperChat(level int) Event {
	t := TierFor(level)
	e := g.base(KindSuperChat)
	e.Author = pick(g.rnd, superChatAuthors)
	e.Message = pick(g.rnd, superChatMessages)
	e.Tier = t.Level
	e.Color = t.Color
	e.Amount = (t.Min + g.rnd.Int64N(t.Max-t.Min+1)) * 100
	return e
}

// Membership returns a new-member announcement.
func (g *Generator) Membership() Event {
	e := g.base(KindMembership)
	e.Author = membershipAuthor
	e.Message = pick(g.rnd, membershipMessages)
	e.Color = membershipColor
	e.Badge = membershipBadge
	return e
}

// Sticker returns an emoji sticker.
func (g *Generator) Sticker() Event {
	e := g.base(KindSticker)
	e.Author = stickerAuthor
	e.Message = pick(g.rnd, stickers)
	e.Color = stickerColor
	return e
}

// RandomChat returns a role message with the role picked from a viewer-heavy distribution.
func (g *Generator) RandomChat() Event {
	return g.Chat(pick(g.rnd, randomChatWeights))
}

// RandomAny returns one of a random chat, a super chat of a random tier, a membership or a sticker.
func (g *Generator) RandomAny() Event {
	switch g.rnd.IntN(4) {
	case 0:
		return g.RandomChat()
	case 1:
		return g.SuperChat(MinTier + g.rnd.IntN(MaxTier))
	case 2:
		return g.Membership()
	default:
		return g.Sticker()
	}
}

func (g *Generator) base(kind Kind) Event {
	return Event{
		ID:        g.NewID(),
		Kind:      kind,
		CreatedAt: g.Now(),
	}
}

func pick[T any](rnd *rand.Rand, table []T) T {
	return table[rnd.IntN(len(table))]
}
