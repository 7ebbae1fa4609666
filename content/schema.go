// Package content defines the study-content schema shared by the ingestion
// tool and the app: courses, topics, videos, podcasts, notes and quizzes,
// plus the playlist pack artifact the ingestion tool emits.
package content

import "github.com/burkiv/dersb/classify"

// Video is a single instructional video pulled from a playlist.
// TopicID is assigned once at classification time; nil means the title
// matched no rule, which is a valid terminal state rather than an error.
type Video struct {
	ID        string  `json:"id"`
	Title     string  `json:"title"`
	YouTubeID string  `json:"youtubeId"`
	Thumbnail string  `json:"thumbnail"`
	Duration  string  `json:"duration,omitempty"`
	TopicID   *string `json:"topicId"`
}

// Instructor groups the videos ingested from one source playlist.
type Instructor struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	PlaylistID  string  `json:"playlistId"`
	Thumbnail   string  `json:"thumbnail"`
	VideoCount  int     `json:"videoCount"`
	Videos      []Video `json:"videos"`
}

// Topic is a curriculum subdivision within a course.
type Topic struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Keywords []string `json:"keywords"`
}

// Podcast is an audio content unit tied to a topic.
type Podcast struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	AudioURL    string `json:"audioUrl"`
	TopicID     string `json:"topicId"`
	Duration    string `json:"duration,omitempty"`
	Description string `json:"description,omitempty"`
}

// Note is a PDF study note tied to a topic.
type Note struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	PDFURL    string `json:"pdfUrl"`
	TopicID   string `json:"topicId"`
	PageCount int    `json:"pageCount,omitempty"`
}

// QuizQuestion is a single multiple-choice question.
type QuizQuestion struct {
	Question     string   `json:"question"`
	Options      []string `json:"options"`
	CorrectIndex int      `json:"correctIndex"`
	Explanation  string   `json:"explanation,omitempty"`
}

// Quiz is a set of questions tied to a topic.
type Quiz struct {
	ID        string         `json:"id"`
	Title     string         `json:"title"`
	TopicID   string         `json:"topicId"`
	Questions []QuizQuestion `json:"questions"`
}

// Course is a top-level exam subject grouping topics and content sources.
type Course struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Topics      []Topic      `json:"topics"`
	Instructors []Instructor `json:"instructors"`
	Podcasts    []Podcast    `json:"podcasts"`
	Notes       []Note       `json:"notes"`
	Quizzes     []Quiz       `json:"quizzes"`
}

// Library is the full content catalog consumed by the app.
type Library struct {
	Courses []Course `json:"courses"`
}

// CourseByID returns the course with the given ID, or nil.
func (l *Library) CourseByID(courseID string) *Course {
	for i := range l.Courses {
		if l.Courses[i].ID == courseID {
			return &l.Courses[i]
		}
	}
	return nil
}

// InstructorByID returns the named instructor within the course, or nil.
func (c *Course) InstructorByID(instructorID string) *Instructor {
	for i := range c.Instructors {
		if c.Instructors[i].ID == instructorID {
			return &c.Instructors[i]
		}
	}
	return nil
}

// PodcastsByTopic returns the course's podcasts for one topic.
func (c *Course) PodcastsByTopic(topicID string) []Podcast {
	var out []Podcast
	for _, p := range c.Podcasts {
		if p.TopicID == topicID {
			out = append(out, p)
		}
	}
	return out
}

// NotesByTopic returns the course's notes for one topic.
func (c *Course) NotesByTopic(topicID string) []Note {
	var out []Note
	for _, n := range c.Notes {
		if n.TopicID == topicID {
			out = append(out, n)
		}
	}
	return out
}

// QuizzesByTopic returns the course's quizzes for one topic.
func (c *Course) QuizzesByTopic(topicID string) []Quiz {
	var out []Quiz
	for _, q := range c.Quizzes {
		if q.TopicID == topicID {
			out = append(out, q)
		}
	}
	return out
}

// courseNames and topicNames carry the display names for the built-in
// catalog; IDs and keywords come from the classifier rule tables so the
// two stay in sync.
var courseNames = map[string]string{
	"tarih":       "Tarih",
	"turkce":      "Türkçe",
	"matematik":   "Matematik",
	"vatandaslik": "Vatandaşlık",
	"cografya":    "Coğrafya",
}

var topicNames = map[string]string{
	"tarih-inkilaplar":       "Atatürk Dönemi ve İnkılaplar",
	"tarih-kurtulus":         "Kurtuluş Savaşı ve Milli Mücadele",
	"tarih-osmanli-kurulus":  "Osmanlı Devleti Tarihi",
	"tarih-ilk-turk-islam":   "İlk Türk İslam Devletleri",
	"tarih-islamiyet-oncesi": "İslamiyet Öncesi Türk Tarihi",
	"turkce-paragraf":        "Paragraf",
	"turkce-dil-bilgisi":     "Dil Bilgisi",
	"turkce-anlam-bilgisi":   "Anlam Bilgisi",
	"turkce-cumle-bilgisi":   "Cümle Bilgisi",
	"mat-sayilar":            "Sayılar",
	"mat-bolme-bolunebilme":  "Bölme ve Bölünebilme",
	"mat-problemler":         "Problemler",
	"mat-denklemler":         "Denklemler",
	"vat-anayasa":            "Anayasa Hukuku",
	"vat-idare":              "İdare Hukuku",
	"vat-insan-haklari":      "İnsan Hakları",
	"cog-fiziki":             "Fiziki Coğrafya",
	"cog-iklim":              "İklim",
	"cog-turkiye":            "Türkiye Coğrafyası",
	"cog-nufus":              "Nüfus ve Yerleşme",
}

// courseOrder fixes the display order of the built-in courses.
var courseOrder = []string{"tarih", "turkce", "matematik", "vatandaslik", "cografya"}

// DefaultLibrary builds the built-in course catalog from the classifier's
// default rule tables. Instructor video lists are filled in by loading
// ingested packs (see AttachPack).
func DefaultLibrary() *Library {
	rules := classify.DefaultRules()
	lib := &Library{}
	for _, courseID := range courseOrder {
		course := Course{ID: courseID, Name: courseNames[courseID]}
		for _, r := range rules[courseID] {
			course.Topics = append(course.Topics, Topic{
				ID:       r.TopicID,
				Name:     topicNames[r.TopicID],
				Keywords: r.Keywords,
			})
		}
		lib.Courses = append(lib.Courses, course)
	}
	return lib
}

// AttachPack merges an ingested playlist pack into the library, replacing
// any previously attached instructor with the same ID in the same course.
func (l *Library) AttachPack(p *Pack) {
	course := l.CourseByID(p.CourseID)
	if course == nil {
		return
	}
	for i := range course.Instructors {
		if course.Instructors[i].ID == p.Instructor.ID {
			course.Instructors[i] = p.Instructor
			return
		}
	}
	course.Instructors = append(course.Instructors, p.Instructor)
}
