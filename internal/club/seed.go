package club

// SeedRoster is the roster used when no stored roster exists.
func SeedRoster() []Member {
	seed := []struct {
		id     string
		name   string
		gender Gender
	}{
		{"m1", "김형걸", GenderMale},
		{"m2", "원태훈", GenderMale},
		{"m3", "양규", GenderMale},
		{"m4", "황순철", GenderMale},
		{"m5", "이강규", GenderMale},
		{"m6", "이진석", GenderMale},
		{"m7", "송원택", GenderMale},
		{"m8", "최영락", GenderMale},
		{"f1", "박소희", GenderFemale},
		{"f2", "최지혜", GenderFemale},
		{"f3", "송이슬", GenderFemale},
		{"f4", "장소연", GenderFemale},
		{"f5", "국유정", GenderFemale},
		{"f6", "이나리", GenderFemale},
		{"f7", "임이슬", GenderFemale},
		{"f8", "최은경", GenderFemale},
	}

	members := make([]Member, 0, len(seed))
	for _, s := range seed {
		members = append(members, Member{ID: s.id, Name: s.name, Gender: s.gender})
	}
	return members
}
