package directory

import "time"

func fallbackMembers() []MemberCard {
	return []MemberCard{
		{ID: "rec001", Name: "Dupont Alice", Email: "dupontalice@example.com", Phone: "+33 1234 5678", Company: "Tech Entreprise", Role: "Developpeur", Tokens: 7, LinkedIn: "https://www.linkedin.com/in/dupontalice"},
		{ID: "rec002", Name: "Martin Bruno", Email: "martinbruno@example.com", Phone: "+33 1234 5678", Company: "Innovation Corp", Role: "Chef de projet", Tokens: 12, LinkedIn: "https://www.linkedin.com/in/martinbruno"},
		{ID: "rec003", Name: "Taibi Jalil", Email: "taibijalil@example.com", Phone: "+33 1234 5678", Company: "Digital Solutions", Role: "Consultant", Tokens: 5, LinkedIn: "https://www.linkedin.com/in/taibijalil"},
	}
}

func fallbackPartners() []Partner {
	return []Partner{
		{ID: "rec001", Title: "NIKE", Image: unsplash("1542291026-7eec264c27ff")},
		{ID: "rec002", Title: "FEED", Image: unsplash("1556742049-0cfed4f6a45d")},
		{ID: "rec003", Title: "ADIDAS", Image: unsplash("1544966503-7cc5ac882d5e")},
		{ID: "rec004", Title: "DECATHLON", Image: unsplash("1571019613454-1cb2f99b2d8b")},
		{ID: "rec005", Title: "ADIDAS", Image: unsplash("1584464491033-06628f3a6b7b")},
		{ID: "rec006", Title: "DECATHLON", Image: unsplash("1606107557195-0e29a4b5b4aa")},
		{ID: "rec007", Title: "FEED", Image: unsplash("1556742059-2414c0e0b740")},
		{ID: "rec008", Title: "NIKE", Image: unsplash("1549298916-b41d501d3772")},
	}
}

func unsplash(id string) string {
	return "https://images.unsplash.com/photo-" + id + "?w=400&h=300&fit=crop&crop=center"
}

func fallbackEvents() []Event {
	at := func(day int) time.Time { return time.Date(2025, time.October, day, 18, 0, 0, 0, time.UTC) }
	mk := func(id string, day int, slug string) Event {
		return Event{ID: id, Title: "Afterwork business", Start: at(day), Location: "Boulogne, Paris", URL: "https://lu.ma/afterwork-business-" + slug}
	}
	return []Event{
		mk("e1", 9, "09"),
		mk("e2", 16, "16"),
		mk("e3", 21, "21"),
		mk("e4", 23, "23"),
		mk("e5", 26, "26"),
		mk("e6", 30, "30"),
		mk("e7", 31, "31"),
	}
}
