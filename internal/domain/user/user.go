package user

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type User struct {
	ID                     primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Username               string             `json:"username" bson:"username"`
	UsernameInAllLowercase string             `json:"-" bson:"usernameInAllLowercase"`
	EmailAddress           string             `json:"-" bson:"emailAddress"`
	HashedPassword         string             `json:"-" bson:"hashedPassword"`
	CreationDateAndTime    time.Time          `json:"creationDateAndTime" bson:"creationDateAndTime"`
	Statistics             Statistics         `json:"statistics" bson:"statistics"`
	Membership             Membership         `json:"membership" bson:"membership"`
}

type Statistics struct {
	GamesPlayed            int        `json:"gamesPlayed" bson:"gamesPlayed"`
	TotalExperiencePoints  float64    `json:"totalExperiencePoints" bson:"totalExperiencePoints"`
	PersonalBestEasyMode   *BestScore `json:"personalBestScoreOnEasySingleplayerMode,omitempty" bson:"personalBestScoreOnEasySingleplayerMode,omitempty"`
	PersonalBestStdMode    *BestScore `json:"personalBestScoreOnStandardSingleplayerMode,omitempty" bson:"personalBestScoreOnStandardSingleplayerMode,omitempty"`
	MultiplayerGamesPlayed int        `json:"multiplayerGamesPlayed" bson:"multiplayerGamesPlayed"`
	MultiplayerGamesWon    int        `json:"multiplayerGamesWon" bson:"multiplayerGamesWon"`
}

type BestScore struct {
	Score                      float64   `json:"score" bson:"score"`
	TimeInMilliseconds         float64   `json:"timeInMilliseconds" bson:"timeInMilliseconds"`
	ScoreSubmissionDateAndTime time.Time `json:"scoreSubmissionDateAndTime" bson:"scoreSubmissionDateAndTime"`
	ActionsPerformed           int       `json:"actionsPerformed" bson:"actionsPerformed"`
	EnemiesKilled              int       `json:"enemiesKilled" bson:"enemiesKilled"`
	EnemiesCreated             int       `json:"enemiesCreated" bson:"enemiesCreated"`
	GlobalRank                 int       `json:"globalRank" bson:"globalRank"`
}

type Membership struct {
	IsDeveloper         bool   `json:"isDeveloper" bson:"isDeveloper"`
	IsAdministrator     bool   `json:"isAdministrator" bson:"isAdministrator"`
	IsModerator         bool   `json:"isModerator" bson:"isModerator"`
	IsCollaborator      bool   `json:"isCollaborator" bson:"isCollaborator"`
	IsTrialCollaborator bool   `json:"isTrialCollaborator" bson:"isTrialCollaborator"`
	IsContributor       bool   `json:"isContributor" bson:"isContributor"`
	IsTester            bool   `json:"isTester" bson:"isTester"`
	IsDonator           bool   `json:"isDonator" bson:"isDonator"`
	SpecialRank         string `json:"specialRank,omitempty" bson:"specialRank,omitempty"`
}
