package dinacharya

import (
	"github.com/ayushlabs/ayush-backend/internal/prakriti"
	"github.com/ayushlabs/ayush-backend/internal/types"
)

// TasksPerWeek is the length of every valid weekly plan. Stored plans of any
// other non-zero length are treated as legacy data needing repair.
const TasksPerWeek = 7

// Catalog is the immutable mapping from dominant dosha to the canonical
// weekly ritual set. Construct one at startup and inject it; callers always
// receive copies, never the canonical slices.
type Catalog struct {
	weekly map[string][]types.WeeklyTask
}

// NewCatalog builds the canonical bilingual dinacharya catalog.
func NewCatalog() *Catalog {
	return &Catalog{weekly: map[string][]types.WeeklyTask{
		prakriti.DoshaVata: {
			{ID: "v1", TaskEN: "Oil Pulling (Gandusha)", TaskKN: "ಗಂಡೂಷ", DescEN: "Swish warm sesame oil for 5 mins.", DescKN: "5 ನಿಮಿಷ ಬೆಚ್ಚಗಿನ ಎಣ್ಣೆಯನ್ನು ಮುಕ್ಕಳಿಸಿ."},
			{ID: "v2", TaskEN: "Warm Abhyanga", TaskKN: "ಅಭ್ಯಂಗ", DescEN: "Self-massage with warm oil before bath.", DescKN: "ಸ್ನಾನಕ್ಕೂ ಮುನ್ನ ಬೆಚ್ಚಗಿನ ಎಣ್ಣೆ ಮಸಾಜ್."},
			{ID: "v3", TaskEN: "Ushnapana", TaskKN: "ಉಷ್ಣಪಾನ", DescEN: "Drink a glass of lukewarm water.", DescKN: "ಒಂದು ಲೋಟ ಉಗುರುಬೆಚ್ಚಗಿನ ನೀರನ್ನು ಕುಡಿಯಿರಿ."},
			{ID: "v4", TaskEN: "Nadi Shodhana", TaskKN: "ನಾಡಿ ಶೋಧನ", DescEN: "5 mins of alternate nostril breathing.", DescKN: "5 ನಿಮಿಷಗಳ ಕಾಲ ಅನುಲೋಮ-ವಿಲೋಮ ಪ್ರಾಣಾಯಾಮ."},
			{ID: "v5", TaskEN: "Grounding Walk", TaskKN: "ನೆಲದ ಸಂಪರ್ಕ", DescEN: "Walk barefoot on grass or earth.", DescKN: "ಹುಲ್ಲಿನ ಮೇಲೆ ಬರಿಗಾಲಿನಲ್ಲಿ ನಡೆಯಿರಿ."},
			{ID: "v6", TaskEN: "Pada-Abhyanga", TaskKN: "ಪಾದಾಭ್ಯಂಗ", DescEN: "Massage feet with ghee before bed.", DescKN: "ಮಲಗುವ ಮುನ್ನ ಪಾದಗಳಿಗೆ ತುಪ್ಪದ ಮಸಾಜ್."},
			{ID: "v7", TaskEN: "Early Rest", TaskKN: "ಬೇಗ ವಿಶ್ರಾಂತಿ", DescEN: "In bed by 10 PM to stabilize Vata.", DescKN: "ವಾತ ಸಮತೋಲನಕ್ಕೆ ರಾತ್ರಿ 10 ಗಂಟೆಗೆ ಮಲಗಿ."},
		},
		prakriti.DoshaPitta: {
			{ID: "p1", TaskEN: "Sheetali Pranayama", TaskKN: "ಶೀತಲಿ ಪ್ರಾಣಾಯಾಮ", DescEN: "10 rounds of cooling breath.", DescKN: "10 ಬಾರಿ ಶೀತಲಿ ಉಸಿರಾಟದ ಅಭ್ಯಾಸ ಮಾಡಿ."},
			{ID: "p2", TaskEN: "Coconut Oil Abhyanga", TaskKN: "ತೈಲ ಮಸಾಜ್", DescEN: "Massage with cooling coconut oil.", DescKN: "ತಂಪಾದ ತೆಂಗಿನ ಎಣ್ಣೆಯಿಂದ ಮಸಾಜ್ ಮಾಡಿ."},
			{ID: "p3", TaskEN: "Rose Water Eye Wash", TaskKN: "ಕಣ್ಣಿನ ಸ್ವಚ್ಛತೆ", DescEN: "Soothe eyes with cool rose water.", DescKN: "ಗುಲಾಬಿ ನೀರಿನಿಂದ ಕಣ್ಣುಗಳನ್ನು ತೊಳೆಯಿರಿ."},
			{ID: "p4", TaskEN: "Moonlight Walk", TaskKN: "ಚಂದ್ರನ ನಡಿಗೆ", DescEN: "Walk under the moon for 10 mins.", DescKN: "10 ನಿಮಿಷಗಳ ಕಾಲ ಚಂದ್ರನ ಬೆಳಕಿನಲ್ಲಿ ನಡೆಯಿರಿ."},
			{ID: "p5", TaskEN: "Midday Meditation", TaskKN: "ಧ್ಯಾನ", DescEN: "Calm the mind during Pitta peak (12 PM).", DescKN: "ಮಧ್ಯಾಹ್ನ 12 ಗಂಟೆಗೆ ಸ್ವಲ್ಪ ಸಮಯ ಧ್ಯಾನ ಮಾಡಿ."},
			{ID: "p6", TaskEN: "Shatavari Tea", TaskKN: "ಶತಾವರಿ ಚಹಾ", DescEN: "Drink a cooling herbal infusion.", DescKN: "ತಂಪಾದ ಗಿಡಮೂಲಿಕೆ ಚಹಾವನ್ನು ಕುಡಿಯಿರಿ."},
			{ID: "p7", TaskEN: "Practice Gratitude", TaskKN: "ಕೃತಜ್ಞತೆ", DescEN: "Write 3 things you are thankful for.", DescKN: "ನೀವು ಕೃತಜ್ಞರಾಗಿರುವ 3 ವಿಷಯಗಳನ್ನು ಬರೆಯಿರಿ."},
		},
		prakriti.DoshaKapha: {
			{ID: "k1", TaskEN: "Surya Muhurta Wakeup", TaskKN: "ಬೇಗ ಏಳುವುದು", DescEN: "Wake up before 6 AM.", DescKN: "ಬೆಳಿಗ್ಗೆ 6 ಗಂಟೆಯ ಮೊದಲು ಏಳಿ."},
			{ID: "k2", TaskEN: "Udvartana (Dry Scrub)", TaskKN: "ಉದ್ವರ್ತನ", DescEN: "Dry herbal powder skin massage.", DescKN: "ಗಿಡಮೂಲಿಕೆ ಪುಡಿಯಿಂದ ಒಣ ಮಸಾಜ್ ಮಾಡಿ."},
			{ID: "k3", TaskEN: "Vigorous Yoga", TaskKN: "ವೇಗವಾದ ಯೋಗ", DescEN: "12 rounds of fast Surya Namaskar.", DescKN: "12 ಬಾರಿ ವೇಗವಾದ ಸೂರ್ಯ ನಮಸ್ಕಾರ ಮಾಡಿ."},
			{ID: "k4", TaskEN: "Nasya (Nasal Drops)", TaskKN: "ನಸ್ಯ", DescEN: "Apply 2 drops of Anu Thailam in nose.", DescKN: "ಮೂಗಿಗೆ 2 ಹನಿ ಅಣು ತೈಲವನ್ನು ಹಾಕಿ."},
			{ID: "k5", TaskEN: "Warm Ginger Water", TaskKN: "ಶುಂಠಿ ನೀರು", DescEN: "Sip hot ginger water throughout day.", DescKN: "ದಿನವಿಡೀ ಬಿಸಿ ಶುಂಠಿ ನೀರನ್ನು ಕುಡಿಯಿರಿ."},
			{ID: "k6", TaskEN: "Stimulating Walk", TaskKN: "ಚುರುಕಾದ ನಡಿಗೆ", DescEN: "20 mins of brisk afternoon walking.", DescKN: "ಮಧ್ಯಾಹ್ನ 20 ನಿಮಿಷ ಚುರುಕಾಗಿ ನಡೆಯಿರಿ."},
			{ID: "k7", TaskEN: "Social Connection", TaskKN: "ಸಾಮಾಜಿಕ ಸಂವಹನ", DescEN: "Call a friend or family member.", DescKN: "ಸ್ನೇಹಿತರು ಅಥವಾ ಕುಟುಂಬದವರಿಗೆ ಕರೆ ಮಾಡಿ."},
		},
	}}
}

// RitualsFor returns a fresh copy of the weekly ritual set for the given
// dominant dosha, with every task not-done. Unknown doshas (including the
// "Balanced" placeholder of never-classified users) fall back to Vata; that
// fallback is a documented default, not an error.
func (c *Catalog) RitualsFor(dominant string) []types.WeeklyTask {
	src, ok := c.weekly[dominant]
	if !ok {
		src = c.weekly[prakriti.DoshaVata]
	}
	out := make([]types.WeeklyTask, len(src))
	for i, t := range src {
		t.Done = false
		t.CompletedAt = ""
		out[i] = t
	}
	return out
}

// Doshas lists the category keys the catalog defines.
func (c *Catalog) Doshas() []string {
	return []string{prakriti.DoshaVata, prakriti.DoshaPitta, prakriti.DoshaKapha}
}
