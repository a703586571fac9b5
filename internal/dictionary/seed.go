package dictionary

import "github.com/rcliao/borno/internal/model"

// Seed is written to the entries slot the first time it is read empty.
var Seed = []model.Entry{
	{
		ID:           "1",
		Word:         "Serendipity",
		Translation:  "দৈবযোগ",
		Phonetic:     "/ˌsɛr.ənˈdɪp.ɪ.ti/",
		PartOfSpeech: "noun (বিশেষ্য)",
		Meaning:      "The occurrence of events by chance in a happy or beneficial way.",
		Description:  "দৈবক্রমে শুভ বা আনন্দদায়ক কিছু খুঁজে পাওয়ার ঘটনা।",
		Synonyms:     []string{"Chance", "Fate", "Fluke"},
		Antonyms:     []string{"Misfortune", "Bad luck"},
		Examples: []string{
			"Finding this book was pure serendipity. (এই বইটি খুঁজে পাওয়া ছিল নিতান্তই এক সুখকর দৈবঘটনা।)",
			"We met by serendipity in the park. (পার্কে আমাদের দেখা হয়েছিল এক দৈবযোগে।)",
		},
		Origin:   "Coined by Horace Walpole in 1754.",
		Language: model.English,
	},
	{
		ID:           "2",
		Word:         "সূর্যমুখী",
		Translation:  "Sunflower",
		Phonetic:     "/sur.jo.mu.kʰi/",
		PartOfSpeech: "noun (বিশেষ্য)",
		Meaning:      "A tall North American plant of the daisy family, with very large golden-rayed flowers.",
		Description:  "এক প্রকার বৃহৎ হলুদ রঙের ফুল যা সূর্যের দিকে মুখ করে থাকে।",
		Samas:        "সূর্যের দিকে মুখ যার (বহুব্রীহি)",
		Source:       "তৎসম",
		Synonyms:     []string{"Sunflower"},
		Antonyms:     []string{},
		Examples: []string{
			"সূর্যমুখী ফুল দেখতে খুব সুন্দর। (Sunflowers are very beautiful to look at.)",
			"ক্ষেতটি সূর্যমুখীতে ভরে গেছে। (The field is full of sunflowers.)",
		},
		Language: model.Bengali,
	},
}

func seedCopy() []model.Entry {
	out := make([]model.Entry, len(Seed))
	for i, e := range Seed {
		out[i] = e.Clone()
	}
	return out
}
