package app

// Topic is a study-corner preset that runs a fixed search.
type Topic struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Label string `json:"label"`
	Query string `json:"query"`
}

var topics = []Topic{
	{ID: "grammar", Title: "ব্যাকরণ", Label: "Grammar", Query: "সমাস"},
	{ID: "science", Title: "বিজ্ঞান", Label: "Science", Query: "কোষ"},
	{ID: "literature", Title: "সাহিত্য", Label: "Literature", Query: "অলঙ্কার"},
	{ID: "idioms", Title: "বাগধারা", Label: "Idioms", Query: "বাগধারা"},
}

// Topics lists the study-corner presets in display order.
func Topics() []Topic {
	out := make([]Topic, len(topics))
	copy(out, topics)
	return out
}

// TopicByID looks a preset up by id.
func TopicByID(id string) (Topic, bool) {
	for _, t := range topics {
		if t.ID == id {
			return t, true
		}
	}
	return Topic{}, false
}
