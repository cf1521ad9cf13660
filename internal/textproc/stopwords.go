package textproc

import "strings"

// englishStopWords covers articles, pronouns, prepositions, conjunctions,
// auxiliaries, frequent adverbs, written-out numbers, and bare contraction
// suffixes left over after tokenization.
var englishStopWords = map[string]struct{}{}

func init() {
	for _, w := range strings.Fields(stopWordList) {
		englishStopWords[w] = struct{}{}
	}
}

const stopWordList = `
a an the
i you he she it we they me him her us them
my your his its our their myself yourself himself
herself itself ourselves yourselves themselves this that these
those who whom whose which what
in on at by for with without to from up down
out off over under above below between among through
during before after since until of about into onto
upon within across against toward towards behind beside
beyond near around
and or but so yet nor if when where why
how while although though because unless
whether either neither both not only
am is are was were be being been have has had
do does did will would shall should may might can
could must ought
no yes here there then
now today yesterday tomorrow always never sometimes
often usually very quite rather too also just
even still already again more most much many
few little less least all some any each every
another other such same different
as than like well way first
last next new old good bad big small long short
high low right left sure ok okay hello hi bye
please thank thanks welcome
one two three four five six seven eight nine ten
eleven twelve thirteen fourteen fifteen sixteen seventeen
eighteen nineteen twenty thirty forty fifty sixty seventy
eighty ninety hundred thousand million billion
ll ve re d t s m
`

// IsStopWord reports whether word is a common English function word that
// carries little learning value. The check is case-insensitive.
func IsStopWord(word string) bool {
	_, ok := englishStopWords[strings.ToLower(strings.TrimSpace(word))]
	return ok
}
