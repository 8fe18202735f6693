package chat

// roleTable holds the lookup tables for one of the four role kinds.
type roleTable struct {
	Authors  []string
	Messages []string
	Color    string
	Badge    string
}

var roleTables = map[Kind]roleTable{
	KindOwner: {
		Authors: []string{"ChannelOwner", "StreamerPro"},
		Messages: []string{
			"Welcome to the stream everyone! 🎉",
			"Thanks for joining us today!",
			"Don't forget to like and subscribe!",
			"We've got some great content today!",
			"Appreciate all the support! 🙏",
		},
		Color: "#FF0000",
		Badge: "OWNER",
	},
	KindMod: {
		Authors: []string{"AwesomeMod", "ChatGuardian", "StreamHelper"},
		Messages: []string{
			"Please keep chat respectful everyone",
			"Use !commands to see available commands",
			"Welcome new viewers!",
			"Reminder: No self-promotion in chat",
			"Timeouts will be given for rule breaking",
		},
		Color: "#5e84f1",
		Badge: "MOD",
	},
	KindMember: {
		Authors: []string{"LoyalMember", "SuperFan", "VIPViewer"},
		Messages: []string{
			"Love your content! 💖",
			"This stream is amazing!",
			"Been here since the beginning!",
			"Can't wait for the next stream!",
			"The member perks are awesome!",
		},
		Color: "#29a13e",
		Badge: "MEMBER",
	},
	KindViewer: {
		Authors: []string{"RandomViewer", "CuriousCat", "Traveler", "NewViewer"},
		Messages: []string{
			"Hello from Indonesia! 🇮🇩",
			"First time watching, great stream!",
			"How is everyone doing?",
			"This is so entertaining!",
			"LOL that was funny!",
		},
		Color: "#FFFFFF",
	},
}

// Tier describes the colour and whole-currency amount range of a super chat tier. Min and Max are inclusive.
type Tier struct {
	Level int
	Color string
	Min   int64
	Max   int64
}

// MinTier and MaxTier bound the valid super chat tiers.
const (
	MinTier = 1
	MaxTier = 7
)

// Tiers is indexed by tier level - 1.
var Tiers = [MaxTier]Tier{
	{Level: 1, Color: "#1E88E5", Min: 1, Max: 10},
	{Level: 2, Color: "#00E5FF", Min: 10, Max: 19},
	{Level: 3, Color: "#1DE9B6", Min: 20, Max: 49},
	{Level: 4, Color: "#FFCA28", Min: 50, Max: 99},
	{Level: 5, Color: "#FF9800", Min: 100, Max: 199},
	{Level: 6, Color: "#E91E63", Min: 200, Max: 499},
	{Level: 7, Color: "#E62117", Min: 500, Max: 999},
}

// TierFor returns the tier table entry for level, falling back to tier 1 when level is outside MinTier..MaxTier.
func TierFor(level int) Tier {
	if level < MinTier || level > MaxTier {
		return Tiers[0]
	}
	return Tiers[level-1]
}

var (
	superChatAuthors  = []string{"SuperSupporter", "BigFan", "LoyalViewer"}
	superChatMessages = []string{
		"Amazing content! Keep it up!",
		"Thanks for the great stream!",
		"You deserve this!",
		"This stream is awesome!",
		"Worth every penny!",
	}
)

const (
	membershipAuthor = "NewMember"
	membershipColor  = "#29a13e"
	membershipBadge  = "MEMBER"
)

var membershipMessages = []string{
	"Just became a member! Excited to be part of the community!",
	"Happy to support the channel as a new member!",
	"Member perks here I come! So excited!",
	"Finally decided to become a member! Worth it!",
}

const (
	stickerAuthor = "StickerLover"
	stickerColor  = "#FFD700"
)

var stickers = []string{"🎉", "🔥", "❤️", "😂", "😍"}

// randomChatWeights biases random role picks towards viewers, as a real chat would be.
var randomChatWeights = []Kind{KindViewer, KindViewer, KindViewer, KindMember, KindMember, KindMod, KindOwner}
