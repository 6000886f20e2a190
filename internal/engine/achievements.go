package engine

import "context"

// Achievement represents a badge the player can earn. Badges are derived from
// the snapshot on demand and never stored.
type Achievement struct {
	ID          string
	Name        string
	Description string
	Icon        string
	Earned      bool
}

// AchievementChecker calculates which achievements a snapshot has earned.
type AchievementChecker struct {
	snap Snapshot
}

func NewAchievementChecker(snap Snapshot) *AchievementChecker {
	return &AchievementChecker{snap: snap}
}

// GetAchievements returns all achievements with their earned status.
func (c *AchievementChecker) GetAchievements() []Achievement {
	return []Achievement{
		// Level milestones
		c.levelAchievement("getting_started", "Getting Started", "Reach level 3", "🌿", 3),
		c.levelAchievement("on_the_path", "On the Path", "Reach level 5", "🌳", 5),
		c.levelAchievement("seasoned", "Seasoned Adventurer", "Reach level 10", "⭐", 10),
		c.levelAchievement("veteran", "Veteran", "Reach level 25", "🌟", 25),
		c.levelAchievement("master", "Master", "Reach level 50", "💫", 50),

		// Quest milestones
		c.questCountAchievement("first_quest", "First Quest", "Complete 1 quest", "✓", 1),
		c.questCountAchievement("productive", "Productive", "Complete 10 quests", "📋", 10),
		c.questCountAchievement("achiever", "Achiever", "Complete 50 quests", "🏅", 50),
		c.raidAchievement("dragon_slayer", "Dragon Slayer", "Defeat a boss raid", "🐲"),

		// Attribute milestones
		c.attrAchievement("strong", "Strong", "Reach 10 strength", "💪", AttributeStrength, 10),
		c.attrAchievement("smart", "Smart", "Reach 10 intelligence", "🧠", AttributeIntelligence, 10),
		c.attrAchievement("wise", "Wise", "Reach 10 wisdom", "🧘", AttributeWisdom, 10),
		c.attrAchievement("hardy", "Hardy", "Reach 10 vitality", "❤️", AttributeVitality, 10),
		c.attrAchievement("charming", "Charming", "Reach 10 charisma", "🗣️", AttributeCharisma, 10),

		// Habit milestones
		c.streakAchievement("on_a_roll", "On a Roll", "Keep a 7 day streak", "🔥", 7),
		c.formedAchievement("habit_former", "Habit Former", "Form a habit", "🔁", 1),
		c.formedAchievement("creature_of_habit", "Creature of Habit", "Form 3 habits", "🏛️", 3),

		c.goldAchievement("hoarder", "Hoarder", "Hold 500 gold", "🪙", 500),
	}
}

// CountEarned returns how many achievements have been earned.
func (c *AchievementChecker) CountEarned() int {
	count := 0
	for _, a := range c.GetAchievements() {
		if a.Earned {
			count++
		}
	}
	return count
}

func (c *AchievementChecker) levelAchievement(id, name, desc, icon string, level int) Achievement {
	earned := c.snap.Progression.Level >= level
	return Achievement{ID: id, Name: name, Description: desc, Icon: icon, Earned: earned}
}

func (c *AchievementChecker) questCountAchievement(id, name, desc, icon string, count int) Achievement {
	done := 0
	for _, q := range c.snap.Quests {
		if q.Done && !q.Failed {
			done++
		}
	}
	return Achievement{ID: id, Name: name, Description: desc, Icon: icon, Earned: done >= count}
}

func (c *AchievementChecker) raidAchievement(id, name, desc, icon string) Achievement {
	earned := false
	for _, q := range c.snap.Quests {
		if q.IsBossRaid() && q.Done && !q.Failed {
			earned = true
			break
		}
	}
	return Achievement{ID: id, Name: name, Description: desc, Icon: icon, Earned: earned}
}

func (c *AchievementChecker) attrAchievement(id, name, desc, icon string, attr Attribute, points int) Achievement {
	earned := c.snap.Progression.Attributes.Get(attr) >= points
	return Achievement{ID: id, Name: name, Description: desc, Icon: icon, Earned: earned}
}

// streakAchievement counts current streaks and formed habits.
func (c *AchievementChecker) streakAchievement(id, name, desc, icon string, days int) Achievement {
	earned := false
	for _, h := range c.snap.Habits {
		if h.Streak >= days || h.Formed {
			earned = true
			break
		}
	}
	return Achievement{ID: id, Name: name, Description: desc, Icon: icon, Earned: earned}
}

func (c *AchievementChecker) formedAchievement(id, name, desc, icon string, count int) Achievement {
	formed := 0
	for _, h := range c.snap.Habits {
		if h.Formed {
			formed++
		}
	}
	return Achievement{ID: id, Name: name, Description: desc, Icon: icon, Earned: formed >= count}
}

func (c *AchievementChecker) goldAchievement(id, name, desc, icon string, gold int) Achievement {
	earned := c.snap.Progression.Gold >= gold
	return Achievement{ID: id, Name: name, Description: desc, Icon: icon, Earned: earned}
}

// Achievements evaluates the badges for the current snapshot.
func (s *Service) Achievements(ctx context.Context) ([]Achievement, error) {
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return NewAchievementChecker(snap).GetAchievements(), nil
}
