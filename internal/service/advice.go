package service

import "strings"

const (
	WaterDailyGoalMl   = 2000
	WaterNudgeBelowMl  = 1500
	SleepNudgeBelowHrs = 7
	CaloriesNudgeAbove = 2000
	StressNudgeFrom    = 4

	QuizQuestion = "Health Quiz: How many hours of sleep do you aim for nightly? Reply with a number (e.g., 7)."
)

var Commands = []string{
	"profile", "remind", "progress", "update_progress", "bmi", "health_tip", "feedback",
	"log_water", "log_sleep", "log_calories", "log_workout", "log_stress", "motivate",
	"health_quiz", "export_data", "report_issue", "health_summary", "weekly_trend",
	"goal_progress", "wearable_data",
}

var tips = []string{
	"Drink 8 glasses of water daily.",
	"Aim for 30 minutes of exercise most days.",
	"Get 7-9 hours of sleep.",
	"Eat a balanced diet with fruits and vegetables.",
}

var quotes = []string{
	"Small steps every day lead to big results!",
	"Your health is worth every effort you put in.",
	"Keep going, you're stronger than you think!",
	"Every healthy choice is a victory.",
}

type Topic string

const (
	TopicGeneral   Topic = "general"
	TopicHeadache  Topic = "headache"
	TopicChestPain Topic = "chest_pain"
	TopicStress    Topic = "stress"
	TopicDiet      Topic = "diet"
	TopicExercise  Topic = "exercise"
	TopicWater     Topic = "water"
	TopicSleep     Topic = "sleep"
	TopicQuiz      Topic = "quiz"
)

// first matching keyword wins, so order matters
var topics = []struct {
	keyword string
	topic   Topic
	advice  string
}{
	{"headache", TopicHeadache, "Headaches may be due to dehydration, stress, or lack of sleep. Drink water, rest, and consult a doctor if persistent."},
	{"chest pain", TopicChestPain, "Chest pain is serious. Seek medical attention immediately."},
	{"stress", TopicStress, "Try deep breathing or a 5-minute meditation. Log your stress with /log_stress to track patterns."},
	{"diet", TopicDiet, "A balanced diet with vegetables, lean protein, and whole grains is ideal. Log meals with /log_calories for tracking."},
	{"exercise", TopicExercise, "Aim for 30 minutes of moderate exercise, like walking or yoga, 5 days a week. Log with /log_workout."},
	{"water", TopicWater, "Aim for 2L of water daily. Log intake with /log_water to track progress."},
	{"sleep", TopicSleep, "Aim for 7-9 hours of sleep. Log with /log_sleep for tips."},
}

const generalAdvice = "Consult a doctor if symptoms persist."

// Advise picks canned advice by keyword.
func Advise(message string) (Topic, string) {
	lower := strings.ToLower(message)
	for _, t := range topics {
		if strings.Contains(lower, t.keyword) {
			return t.topic, t.advice
		}
	}
	return TopicGeneral, generalAdvice
}
