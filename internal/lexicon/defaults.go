package lexicon

var defaultLexicon = MustNew(DefaultLists())

// Default returns the built-in English academic lexicon.
func Default() *Lexicon {
	return defaultLexicon
}

// DefaultLists returns a fresh copy of the built-in word lists.
func DefaultLists() Lists {
	return Lists{
		StopWords: []string{
			"i", "me", "my", "myself", "we", "our", "ours", "ourselves", "you", "your",
			"yours", "yourself", "yourselves", "he", "him", "his", "himself", "she", "her",
			"hers", "herself", "it", "its", "itself", "they", "them", "their", "theirs",
			"themselves", "what", "which", "who", "whom", "this", "that", "these", "those",
			"am", "is", "are", "was", "were", "be", "been", "being", "have", "has", "had",
			"having", "do", "does", "did", "doing", "a", "an", "the", "and", "but", "if",
			"or", "because", "as", "until", "while", "of", "at", "by", "for", "with",
			"about", "against", "between", "into", "through", "during", "before", "after",
			"above", "below", "to", "from", "up", "down", "in", "out", "on", "off", "over",
			"under", "again", "further", "then", "once", "here", "there", "when", "where",
			"why", "how", "all", "any", "both", "each", "few", "more", "most", "other",
			"some", "such", "no", "nor", "not", "only", "own", "same", "so", "than", "too",
			"very", "can", "will", "just", "don", "should", "now", "also", "et", "al",
			"could", "would", "may", "might", "must", "shall",
		},
		Hedges: []string{
			"approximately", "roughly", "about", "suggest", "suggests", "suggested",
			"may", "might", "could", "would", "possibly", "perhaps", "probably",
			"relatively", "somewhat", "fairly", "rather", "tend", "tends", "tended",
			"appear", "appears", "appeared", "seem", "seems", "seemed", "indicate",
			"indicates", "indicated", "likely", "potentially",
		},
		Coordinating: []string{"and", "but", "or", "nor", "for", "so", "yet"},
		Subordinating: []string{
			"after", "although", "as", "as if", "as long as", "as though", "because",
			"before", "even if", "even though", "if", "if only", "in order that",
			"now that", "once", "provided that", "rather than", "since", "so that",
			"than", "that", "though", "till", "unless", "until", "when", "whenever",
			"where", "whereas", "wherever", "whether", "while",
		},
		Transitions: map[string][]string{
			Sequential: {
				"first", "secondly", "thirdly", "next", "then", "subsequently", "finally",
				"furthermore", "moreover", "additionally", "besides", "in addition",
				"afterwards", "later", "previously", "before",
			},
			Contrastive: {
				"however", "nevertheless", "nonetheless", "although", "though", "despite",
				"in contrast", "conversely", "on the other hand", "while", "whereas",
				"but", "yet", "otherwise",
			},
			Additive: {
				"furthermore", "moreover", "additionally", "besides", "also", "likewise",
				"similarly", "in the same way", "equally",
			},
			Causal: {
				"therefore", "thus", "hence", "consequently", "as a result", "because",
				"due to", "owing to", "for this reason", "accordingly",
			},
			Exemplifying: {
				"for example", "for instance", "specifically", "namely", "in particular",
				"particularly", "such as",
			},
		},
	}
}
