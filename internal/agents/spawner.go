// Personnel spawning: the starting crew and fresh recruits.
package agents

import (
	"fmt"

	"github.com/Dessuht/syndicate-grid-flow-sub001/internal/entropy"
)

var (
	surnames   = []string{"Chan", "Wong", "Lee", "Cheung", "Lau", "Ho", "Ng", "Tang", "Leung", "Kwok", "Yip", "Fung"}
	givenNames = []string{"Wai", "Ming", "Kit", "Fai", "Keung", "Hung", "Lok", "Chun", "Sing", "Tak", "Yan", "Kin"}
	nicknames  = []string{"Scar", "Mad Dog", "Four Eyes", "Big", "Little", "Lucky", "Silent", "Crazy"}

	traitPool    = []string{"Ruthless", "Cautious", "Greedy", "Honourable", "Hot-headed", "Cunning", "Superstitious"}
	interestPool = []string{"Mahjong", "Cantopop", "Horse racing", "Fine tea", "Cigars", "Karaoke", "Kung fu films", "Gold watches"}
)

// Spawner creates personnel for the syndicate. Names and starting stats are
// drawn from the injected source; ids come from the caller.
type Spawner struct {
	src entropy.Source
}

// NewSpawner creates a spawner drawing from src.
func NewSpawner(src entropy.Source) *Spawner {
	return &Spawner{src: src}
}

// Name returns a Kowloon street name.
func (s *Spawner) Name() string {
	name := fmt.Sprintf("%s %s", surnames[s.src.Intn(len(surnames))], givenNames[s.src.Intn(len(givenNames))])
	if s.src.Float64() < 0.3 {
		name = fmt.Sprintf("%s %s", nicknames[s.src.Intn(len(nicknames))], name)
	}
	return name
}

// Recruit creates a green street soldier.
func (s *Spawner) Recruit(id string) *StreetSoldier {
	return &StreetSoldier{
		ID:         id,
		Name:       s.Name(),
		Loyalty:    entropy.Between(s.src, 40, 70),
		Skill:      entropy.Between(s.src, 20, 45),
		Experience: 0,
		Needs:      Needs{Food: 70, Entertainment: 60, Pay: 70},
	}
}

// Officer creates an officer of the given rank with rolled skills.
func (s *Spawner) Officer(id string, rank Rank) *Officer {
	o := &Officer{
		ID:   id,
		Name: s.Name(),
		Rank: rank,
		Skills: Skills{
			Enforcement: entropy.Between(s.src, 30, 70),
			Diplomacy:   entropy.Between(s.src, 30, 70),
			Logistics:   entropy.Between(s.src, 30, 70),
			Recruitment: entropy.Between(s.src, 30, 70),
		},
		Loyalty:   entropy.Between(s.src, 55, 80),
		Face:      entropy.Between(s.src, 10, 40),
		Energy:    100,
		MaxEnergy: 100,
		Traits:    s.pick(traitPool, 2),
		Likes:     s.pick(interestPool, 2),
		Dislikes:  s.pick(interestPool, 1),
	}
	return o
}

// pick draws n distinct entries from pool.
func (s *Spawner) pick(pool []string, n int) []string {
	if n > len(pool) {
		n = len(pool)
	}
	idx := make([]int, len(pool))
	for i := range idx {
		idx[i] = i
	}
	out := make([]string, 0, n)
	for i := 0; i < n; i++ {
		j := i + s.src.Intn(len(idx)-i)
		idx[i], idx[j] = idx[j], idx[i]
		out = append(out, pool[idx[i]])
	}
	return out
}
