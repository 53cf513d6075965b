package db

type Game struct {
	GameID      string
	Date        int64
	Frames      string
	FrameScores string
	TotalScore  int64
	IsPractice  bool
	IsSeries    bool
	SeriesID    *string
	Note        *string
	League      *string
	IsPinMode   bool
	Patterns    string
	Balls       *string
	IsClean     bool
	IsPerfect   bool
	CreatedAt   int64
	UpdatedAt   int64
}
