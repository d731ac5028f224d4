package nlp

import "strings"

var irregularVerbs = map[string]string{
	"am": "be", "is": "be", "are": "be", "was": "be", "were": "be", "been": "be", "being": "be", "'s": "be", "'re": "be", "'m": "be",
	"has": "have", "had": "have", "having": "have", "'ve": "have",
	"does": "do", "did": "do", "done": "do", "doing": "do",
	"went": "go", "gone": "go", "goes": "go",
	"made": "make", "took": "take", "taken": "take", "gave": "give", "given": "give",
	"found": "find", "showed": "show", "shown": "show", "saw": "see", "seen": "see",
	"began": "begin", "begun": "begin", "became": "become", "came": "come",
	"got": "get", "gotten": "get", "held": "hold", "kept": "keep", "left": "leave",
	"led": "lead", "meant": "mean", "met": "meet", "paid": "pay",
	"ran": "run", "said": "say", "sent": "send", "set": "set", "spent": "spend",
	"stood": "stand", "told": "tell", "thought": "think", "understood": "understand",
	"wrote": "write", "written": "write", "drew": "draw", "drawn": "draw",
	"grew": "grow", "grown": "grow", "knew": "know", "known": "know",
	"chose": "choose", "chosen": "choose", "rose": "rise", "risen": "rise",
	"fell": "fall", "fallen": "fall", "brought": "bring", "bought": "buy",
	"built": "build", "caught": "catch", "felt": "feel", "fed": "feed",
	"lay": "lie", "lain": "lie", "lost": "lose", "put": "put", "read": "read",
	"sought": "seek", "sold": "sell", "struck": "strike", "taught": "teach",
	"won": "win", "bore": "bear", "borne": "bear", "undertook": "undertake",
	"undertaken": "undertake", "underwent": "undergo", "undergone": "undergo",
	"applied": "apply", "identified": "identify", "studied": "study", "varied": "vary",
	"making": "make", "taking": "take", "agreed": "agree", "freed": "free",
}

// Stem endings after which a stripped "-ed" or "-ing" leaves a silent "e".
var silentE = []string{
	"at", "iz", "yz", "ur", "rv", "as", "us", "uc", "ud", "ut", "ir", "id",
	"iv", "ov", "av", "ag", "ar", "ic", "ibl", "abl", "ul", "ng", "rg", "rc", "lv", "mpl",
}

// LemmatizeVerb reduces an inflected English verb to its base form with
// an irregular table and suffix rules. It is a heuristic; unknown shapes
// are returned lowercased and otherwise unchanged.
func LemmatizeVerb(word string) string {
	w := strings.ToLower(word)
	if base, ok := irregularVerbs[w]; ok {
		return base
	}
	switch {
	case len(w) > 4 && strings.HasSuffix(w, "ies"):
		return w[:len(w)-3] + "y"
	case len(w) > 4 && strings.HasSuffix(w, "ied"):
		return w[:len(w)-3] + "y"
	case len(w) > 4 && strings.HasSuffix(w, "ing"):
		return restoreStem(w[:len(w)-3])
	case strings.HasSuffix(w, "eed"):
		return w
	case len(w) > 3 && strings.HasSuffix(w, "ed"):
		return restoreStem(w[:len(w)-2])
	case len(w) > 3 && (strings.HasSuffix(w, "ches") || strings.HasSuffix(w, "shes") ||
		strings.HasSuffix(w, "sses") || strings.HasSuffix(w, "xes") || strings.HasSuffix(w, "zes")):
		return w[:len(w)-2]
	case len(w) > 3 && strings.HasSuffix(w, "s") && !strings.HasSuffix(w, "ss") && !strings.HasSuffix(w, "us"):
		return w[:len(w)-1]
	}
	return w
}

func restoreStem(stem string) string {
	n := len(stem)
	if n >= 3 && stem[n-1] == stem[n-2] && !isVowel(stem[n-1]) {
		switch stem[n-1] {
		case 'l', 's', 'f', 'z':
			return stem
		}
		return stem[:n-1]
	}
	if strings.HasSuffix(stem, "ear") {
		return stem
	}
	for _, end := range silentE {
		if strings.HasSuffix(stem, end) {
			return stem + "e"
		}
	}
	return stem
}

func isVowel(b byte) bool {
	switch b {
	case 'a', 'e', 'i', 'o', 'u':
		return true
	}
	return false
}
