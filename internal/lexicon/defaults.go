package lexicon

// Default returns the built-in lexicon. Each call returns a fresh copy.
func Default() *Lexicon {
	return &Lexicon{
		Credibility: CredibilityTable{
			CredibleKeywords: []string{
				"according to", "officials said", "confirmed", "spokesperson", "spokesman",
				"spokeswoman", "announced", "said in a statement", "told reporters",
				"press release", "court documents", "official statement", "data shows",
				"researchers found", "study published", "peer reviewed", "investigation found",
				"verified", "on the record", "public records", "filed with",
			},
			CredibleSources: []string{
				"reuters", "associated press", "afp", "agence france presse", "bloomberg",
				"bbc", "npr", "new york times", "washington post", "wall street journal",
				"financial times", "the guardian", "the economist", "world health organization",
				"centers for disease control", "census bureau", "ministry of", "department of",
				"university", "journal of", "federal reserve", "united nations",
			},
			SuspiciousKeywords: []string{
				"you wont believe", "they dont want you to know", "shocking", "miracle",
				"secret they", "exposed", "hoax", "conspiracy", "mainstream media",
				"wake up", "share before", "before its deleted", "cover up", "coverup",
				"doctors hate", "one weird trick", "the truth about", "what happened next",
				"unbelievable", "jaw dropping", "insiders reveal", "big pharma", "deep state",
				"sheeple", "100 guaranteed", "click here",
			},
			SuspiciousPatterns: []string{
				"!!", "?!", "SHOCKING", "BREAKING", "URGENT", "EXPOSED", "MUST SEE",
				"MUST READ", "OMG", "WOW", "ALERT", "BOMBSHELL", "UNBELIEVABLE",
			},
		},
		// The first four mirror the chart labels of the original web front end.
		Subjects: []Category{
			{Name: "Politics", Keywords: []string{
				"election", "elections", "senator", "senate", "congress", "vote", "votes",
				"voting", "voter*", "campaign", "campaigns", "president", "presidential",
				"parliament", "minister", "government", "policy", "legislation", "democrat*",
				"republican*", "governor", "lawmaker*", "white house", "prime minister",
				"diplomat*", "treaty", "sanction*", "ballot*", "political", "politician*",
			}},
			{Name: "Technology", Keywords: []string{
				"technology", "tech", "software", "hardware", "computer*", "internet", "app",
				"apps", "smartphone*", "artificial intelligence", "ai", "algorithm*", "cyber*",
				"startup*", "silicon valley", "chip", "chips", "semiconductor*", "data breach",
				"robot*", "digital", "online", "cloud computing", "blockchain", "crypto*",
			}},
			{Name: "Science", Keywords: []string{
				"science", "scientist*", "scientific", "research", "researcher*", "experiment*",
				"laboratory", "physics", "chemistry", "biology", "astronom*", "nasa", "planet*",
				"climate", "species", "fossil*", "genome", "dna", "telescope", "particle*",
				"discovery", "discovered", "spacecraft", "evolution",
			}},
			{Name: "Entertainment", Keywords: []string{
				"movie*", "film", "films", "actor*", "actress*", "celebrity", "celebrities",
				"music", "album*", "song*", "concert*", "hollywood", "television", "tv",
				"series", "netflix", "streaming", "box office", "award*", "oscar*", "grammy*",
				"festival*", "singer*", "premiere*",
			}},
			{Name: "Health", Keywords: []string{
				"health", "hospital*", "doctor*", "patient*", "disease*", "virus*", "vaccin*",
				"pandemic", "medical", "medicine", "treatment*", "cancer", "covid*", "outbreak*",
				"mental health", "nurse*", "clinic*", "symptom*", "infection*",
			}},
			{Name: "Business", Keywords: []string{
				"business*", "economy", "economic", "market", "markets", "stock*", "shares",
				"investor*", "company", "companies", "profit*", "revenue*", "earnings",
				"inflation", "trade", "bank", "banks", "banking", "ceo", "merger*",
				"interest rates", "gdp", "retail*", "industry",
			}},
			{Name: "Sports", Keywords: []string{
				"sport", "sports", "team", "teams", "player*", "coach*", "league", "championship*",
				"tournament*", "season", "goal", "goals", "olympic*", "football", "soccer",
				"basketball", "baseball", "tennis", "cricket", "world cup", "athlete*", "stadium",
			}},
		},
		Sentiment: SentimentTable{
			Positive: []string{
				"good", "great", "excellent", "positive", "success", "successful", "successfully",
				"improve", "improved", "improvement", "improving", "gain", "gains", "growth",
				"benefit", "benefits", "happy", "hope", "hopeful", "celebrat*", "achiev*",
				"progress", "breakthrough", "recover*", "strong", "win", "wins", "won",
				"victory", "praised", "boost", "boosted", "safe", "peace", "thriv*",
				"optimistic", "best", "welcome*", "innovative",
			},
			Neutral: []string{
				"said", "says", "report", "reported", "reports", "announce*", "according",
				"stated", "noted", "today", "yesterday", "week", "meeting", "plan", "plans",
				"planned", "update", "updated", "statement", "official", "officials", "data",
				"study", "percent", "expected", "scheduled", "review",
			},
			Negative: []string{
				"bad", "terrible", "awful", "negative", "fail*", "loss", "losses", "lost",
				"declin*", "crisis", "crash*", "death", "deaths", "dead", "kill*", "attack*",
				"war", "violence", "violent", "fear*", "threat*", "danger*", "risk", "risks",
				"concern*", "worst", "scandal", "fraud", "corrupt*", "collaps*", "disaster*",
				"tragic", "tragedy", "injur*", "protest*", "angry", "conflict*", "shocking",
				"hoax", "lies",
			},
			PositivePhrases: []string{
				"record high", "good news", "well received", "major breakthrough", "peace deal",
				"strong growth", "widely praised", "exceeded expectations",
			},
			NegativePhrases: []string{
				"death toll", "state of emergency", "raises concerns", "under investigation",
				"fell sharply", "record low", "lost their lives", "came under fire",
				"public outcry", "missed expectations",
			},
		},
	}
}
