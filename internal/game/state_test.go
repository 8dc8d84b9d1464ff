package game

import "testing"

func testCharacter() Character {
	return Character{ID: "paddy", Name: "Paddy", InitialCorruption: 30, InitialInfluence: 80}
}

func TestNewRunState(t *testing.T) {
	start := DefaultStartValues()
	s := NewRunState(testCharacter(), start)

	if s.Money() != 5000 {
		t.Errorf("Money() = %d, expected 5000", s.Money())
	}
	if s.Corruption() != 30 || s.Support() != 80 {
		t.Errorf("meters = (%d, %d), expected (30, 80)", s.Corruption(), s.Support())
	}
	if s.Day() != 1 {
		t.Errorf("Day() = %d, expected 1", s.Day())
	}
	if s.TimeLeft() != RunDuration {
		t.Errorf("TimeLeft() = %d, expected %d", s.TimeLeft(), RunDuration)
	}
	if s.Outcome() != OutcomeUndetermined {
		t.Errorf("Outcome() = %v, expected undetermined", s.Outcome())
	}
	news := s.News()
	if len(news) != 1 || news[0] != start.OpeningNews {
		t.Errorf("News() = %v, expected [%q]", news, start.OpeningNews)
	}
}

func TestNewRunStateClampsInitialMeters(t *testing.T) {
	c := Character{ID: "x", InitialCorruption: 140, InitialInfluence: -5}
	s := NewRunState(c, StartValues{})

	if s.Corruption() != 100 {
		t.Errorf("Corruption() = %d, expected 100", s.Corruption())
	}
	if s.Support() != 0 {
		t.Errorf("Support() = %d, expected 0", s.Support())
	}
	if len(s.News()) != 0 {
		t.Errorf("News() = %v, expected empty", s.News())
	}
}

func TestMeterClamping(t *testing.T) {
	tests := []struct {
		name string
		set  int
		want int
	}{
		{"within range", 42, 42},
		{"lower bound", 0, 0},
		{"upper bound", 100, 100},
		{"below range", -30, 0},
		{"above range", 250, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewRunState(testCharacter(), StartValues{})
			s.SetCorruption(tt.set)
			s.SetSupport(tt.set)
			if s.Corruption() != tt.want {
				t.Errorf("Corruption() = %d, expected %d", s.Corruption(), tt.want)
			}
			if s.Support() != tt.want {
				t.Errorf("Support() = %d, expected %d", s.Support(), tt.want)
			}
		})
	}
}

func TestTimeLeftClamping(t *testing.T) {
	s := NewRunState(testCharacter(), StartValues{})

	s.SetTimeLeft(-4)
	if s.TimeLeft() != 0 {
		t.Errorf("TimeLeft() = %d, expected 0", s.TimeLeft())
	}
	s.SetTimeLeft(RunDuration + 10)
	if s.TimeLeft() != RunDuration {
		t.Errorf("TimeLeft() = %d, expected %d", s.TimeLeft(), RunDuration)
	}
}

func TestVotesNeverDecrease(t *testing.T) {
	s := NewRunState(testCharacter(), StartValues{})
	s.AddVotes(300)
	s.AddVotes(-100)
	s.AddFakeVotes(500)
	s.AddFakeVotes(-1)

	if s.Votes() != 300 {
		t.Errorf("Votes() = %d, expected 300", s.Votes())
	}
	if s.FakeVotes() != 500 {
		t.Errorf("FakeVotes() = %d, expected 500", s.FakeVotes())
	}
	if s.TotalVotes() != 800 {
		t.Errorf("TotalVotes() = %d, expected 800", s.TotalVotes())
	}
}

func TestMoneyHasNoFloor(t *testing.T) {
	s := NewRunState(testCharacter(), StartValues{Money: 100})
	s.AddMoney(-1200)
	if s.Money() != -1100 {
		t.Errorf("Money() = %d, expected -1100", s.Money())
	}
}

func TestNewsLogBounded(t *testing.T) {
	s := NewRunState(testCharacter(), StartValues{OpeningNews: "n0"})
	for _, h := range []string{"n1", "n2", "n3", "n4", "n5", "n6"} {
		s.PushNews(h)
	}
	s.PushNews("")

	news := s.News()
	expected := []string{"n6", "n5", "n4", "n3", "n2"}
	if len(news) != len(expected) {
		t.Fatalf("len(News()) = %d, expected %d", len(news), len(expected))
	}
	for i := range expected {
		if news[i] != expected[i] {
			t.Errorf("News()[%d] = %q, expected %q", i, news[i], expected[i])
		}
	}

	news[0] = "mutated"
	if s.News()[0] != "n6" {
		t.Error("News() returned an alias of the internal log")
	}
}

func TestTerminalStateIsFrozen(t *testing.T) {
	s := NewRunState(testCharacter(), StartValues{OpeningNews: "n0"})
	s.AddVotes(1000)
	if !s.conclude(OutcomeLost, CauseTimeout) {
		t.Fatal("conclude() = false on an undetermined run")
	}
	before := s.Snapshot()

	s.AddVotes(150)
	s.AddFakeVotes(9000)
	s.AddMoney(-500)
	s.SetCorruption(0)
	s.SetSupport(0)
	s.SetTimeLeft(10)
	s.NextDay()
	s.PushNews("late")

	after := s.Snapshot()
	if after.TotalVotes() != before.TotalVotes() || after.Money != before.Money ||
		after.Corruption != before.Corruption || after.Support != before.Support ||
		after.TimeLeft != before.TimeLeft || after.Day != before.Day || len(after.News) != len(before.News) {
		t.Errorf("terminal state changed: before %+v, after %+v", before, after)
	}

	if s.conclude(OutcomeWon, CauseNone) {
		t.Error("conclude() = true on a decided run")
	}
	if s.Outcome() != OutcomeLost || s.Cause() != CauseTimeout {
		t.Errorf("outcome = (%v, %v), expected (lost, timeout)", s.Outcome(), s.Cause())
	}
}
