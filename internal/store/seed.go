package store

import "github.com/safar/go-lesson-store/internal/models"

// sampleLessons is the fixed bootstrap catalog. The numeric ids are legacy
// identifiers still used by older clients alongside the Mongo ObjectIDs.
var sampleLessons = []models.Lesson{
	{LegacyID: 1, Subject: "Mathematics", Location: "Hendon", Price: 100, Spaces: 5, Image: "maths.png"},
	{LegacyID: 2, Subject: "Physics", Location: "Colindale", Price: 80, Spaces: 5, Image: "physic.png"},
	{LegacyID: 3, Subject: "Chemistry", Location: "Brent Cross", Price: 90, Spaces: 5, Image: "chemistry.png"},
	{LegacyID: 4, Subject: "Biology", Location: "Golders Green", Price: 95, Spaces: 5, Image: "biology.png"},
	{LegacyID: 5, Subject: "History", Location: "Camden", Price: 70, Spaces: 5, Image: "history.png"},
	{LegacyID: 6, Subject: "English", Location: "Ealing", Price: 85, Spaces: 5, Image: "english.png"},
	{LegacyID: 7, Subject: "Computer Science", Location: "Watford", Price: 120, Spaces: 5, Image: "compsci.png"},
	{LegacyID: 8, Subject: "Art", Location: "Hackney", Price: 60, Spaces: 5, Image: "artbook.png"},
	{LegacyID: 9, Subject: "Music", Location: "Stratford", Price: 110, Spaces: 5, Image: "music.png"},
	{LegacyID: 10, Subject: "Economics", Location: "Islington", Price: 130, Spaces: 5, Image: "economicsbook.png"},
}

// SampleLessons returns a copy of the bootstrap catalog.
func SampleLessons() []models.Lesson {
	lessons := make([]models.Lesson, len(sampleLessons))
	copy(lessons, sampleLessons)
	return lessons
}
