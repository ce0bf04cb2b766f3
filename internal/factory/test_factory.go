package factory

import (
	"io"
	"log/slog"
	"time"

	"github.com/mcoot/scrabble-go/internal/dependencies/mocks"
	"github.com/mcoot/scrabble-go/internal/services/auth"
	"github.com/mcoot/scrabble-go/internal/storage/memory"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock  *mocks.MockClock
	MockRandom *mocks.MockRandom
}

// NewTestApp creates an App configured for testing with mocked dependencies
func NewTestApp() *TestApp {
	store := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	mockRandom := mocks.NewMockRandom()

	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	app := newWithDependencies(store, mockClock, mockRandom, auth.DefaultConfig(), logger)

	return &TestApp{
		App:        app,
		MockClock:  mockClock,
		MockRandom: mockRandom,
	}
}

// LoadTestDictionary loads a small dictionary for testing
func (t *TestApp) LoadTestDictionary() {
	words := []string{
		// 2-letter words
		"aa", "ab", "ad", "ae", "ag", "ah", "ai", "al", "am", "an",
		"ar", "as", "at", "aw", "ax", "ay", "ba", "be", "bi", "bo",
		"by", "da", "de", "do", "ed", "ef", "eh", "el", "em", "en",
		"er", "es", "et", "ex", "fa", "go", "ha", "he", "hi", "ho",
		"id", "if", "in", "is", "it", "jo", "ka", "la", "li", "lo",
		"ma", "me", "mi", "mu", "my", "na", "ne", "no", "nu", "od",
		"oe", "of", "oh", "oi", "om", "on", "op", "or", "os", "ow",
		"ox", "oy", "pa", "pe", "pi", "re", "sh", "si", "so", "ta",
		"ti", "to", "uh", "um", "un", "up", "us", "ut", "we", "wo",
		"xi", "xu", "ya", "ye", "yo", "za",
		// 3-letter words
		"ace", "act", "add", "ago", "aid", "aim", "air", "ant", "ape",
		"arc", "are", "arm", "art", "ash", "ask", "ate", "bag", "ban",
		"bar", "bat", "bed", "bee", "bet", "big", "bit", "box", "boy",
		"bug", "bus", "but", "buy", "cab", "can", "cap", "car", "cat",
		"cup", "cut", "day", "dig", "dog", "dot", "ear", "eat", "egg",
		"end", "eye", "fan", "far", "fat", "fig", "fin", "fit", "fix",
		"fly", "fog", "for", "fox", "fun", "gap", "gas", "get", "got",
		"gut", "guy", "ham", "hat", "hen", "hid", "hip", "hit", "hop",
		"hot", "ice", "ink", "jam", "jar", "jet", "job", "joy", "key",
		"kid", "lap", "law", "leg", "let", "lid", "lip", "log", "lot",
		"low", "man", "map", "mar", "mat", "men", "mix", "mud", "net",
		"new", "now", "nut", "oak", "odd", "off", "oil", "old", "one",
		"our", "out", "owl", "own", "pan", "pat", "paw", "pay", "pea",
		"pen", "pet", "pie", "pig", "pin", "pit", "pot", "put", "ran",
		"rat", "raw", "ray", "red", "rib", "rid", "rig", "rim", "rip",
		"rob", "rod", "rot", "row", "rub", "rug", "run", "sat", "saw",
		"say", "sea", "set", "sin", "sip", "sir", "sit", "six", "sky",
		"sod", "son", "sow", "spa", "spy", "sub", "sum", "sun", "tab",
		"tag", "tan", "tap", "tar", "tax", "tea", "ten", "tie", "til",
		"tin", "tip", "toe", "ton", "too", "top", "tow", "toy", "try",
		"tub", "tug", "two", "use", "van", "vat", "vet", "wag", "war",
		"wax", "way", "web", "wet", "wig", "win", "wit", "won", "wow",
		"yak", "yam", "yes", "yet", "you", "zap", "zip",
		// 4-letter words
		"able", "also", "area", "back", "ball", "bank", "base", "bear",
		"beat", "bell", "best", "bird", "blue", "boat", "body", "book",
		"born", "both", "came", "card", "care", "case", "city", "come",
		"cost", "dark", "date", "deal", "deep", "does", "done", "door",
		"down", "draw", "drop", "each", "east", "easy", "edge", "else",
		"even", "ever", "face", "fact", "fall", "farm", "fast", "fear",
		"feel", "feet", "felt", "file", "fill", "film", "find", "fine",
		"fire", "fish", "five", "food", "foot", "form", "four", "free",
		"from", "full", "game", "gave", "girl", "give", "glad", "goes",
		"gold", "gone", "good", "grow", "hair", "half", "hall", "hand",
		"hard", "have", "head", "hear", "heat", "help", "here", "high",
		"hill", "hold", "home", "hope", "hour", "idea", "into", "just",
		"keep", "kept", "kind", "king", "knew", "know", "lack", "lady",
		"lake", "land", "last", "late", "lead", "left", "less", "life",
		"like", "line", "list", "live", "long", "look", "lord", "lose",
		"loss", "lost", "love", "made", "main", "make", "many", "mark",
		"mass", "meet", "mind", "miss", "more", "most", "move", "much",
		"must", "name", "near", "need", "news", "next", "nice", "note",
		"once", "only", "ooze", "open", "over", "page", "paid", "part",
		"pass", "past", "pick", "pies", "plan", "play", "plus", "pool",
		"poor", "post", "pull", "race", "rain", "rate", "read", "real",
		"rest", "rich", "ride", "rise", "road", "rock", "role", "room",
		"rule", "safe", "said", "sale", "same", "save", "says", "seat",
		"seem", "seen", "self", "sell", "send", "sent", "ship", "shop",
		"shot", "show", "shut", "side", "sign", "size", "slat", "slow",
		"snow", "sold", "some", "song", "soon", "sort", "spot", "star",
		"stay", "step", "stop", "such", "sure", "take", "talk", "tell",
		"term", "test", "than", "that", "them", "then", "they", "this",
		"thus", "tile", "time", "told", "took", "town", "tree", "trip",
		"true", "turn", "type", "unit", "upon", "used", "very", "view",
		"vote", "wait", "walk", "wall", "want", "ward", "warm", "ways",
		"week", "well", "went", "were", "west", "what", "when", "whom",
		"wide", "wife", "will", "wind", "wish", "with", "word", "work",
		"yard", "year", "your", "zero", "zone",
		// 5+ letter words
		"about", "above", "added", "after", "again", "among", "ample",
		"began", "being", "black", "blood", "board", "bound", "bring",
		"build", "built", "carry", "cause", "child", "clear", "close",
		"comes", "could", "court", "cover", "death", "doing", "doubt",
		"early", "earth", "eight", "enemy", "enter", "equal", "every",
		"field", "fight", "final", "first", "floor", "force", "forms",
		"found", "front", "given", "going", "great", "green", "group",
		"hands", "happy", "heart", "heavy", "horse", "hotel", "hours",
		"house", "human", "ideas", "image", "known", "large", "later",
		"least", "leave", "level", "light", "lines", "lived", "local",
		"looks", "lower", "march", "means", "might", "money", "month",
		"moral", "moved", "music", "names", "never", "night", "north",
		"offer", "often", "order", "other", "party", "payer", "peace",
		"place", "plain", "plant", "point", "power", "press", "price",
		"range", "reach", "ready", "right", "river", "round", "rules",
		"sample", "seems", "sense", "serve", "shall", "share", "short",
		"shown", "since", "small", "smart", "sound", "south", "space",
		"speak", "spend", "stage", "stand", "start", "state", "still",
		"stock", "stone", "stood", "story", "study", "style", "sweet",
		"table", "taken", "terms", "their", "there", "these", "thing",
		"think", "third", "those", "three", "times", "today", "total",
		"trade", "train", "trees", "trial", "tried", "truth", "under",
		"union", "until", "value", "voice", "water", "weeks", "where",
		"which", "while", "white", "whole", "whose", "woman", "words",
		"world", "would", "write", "wrong", "years", "young",
	}
	t.DictionaryService.LoadWords(words)
}
