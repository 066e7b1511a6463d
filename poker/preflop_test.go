package poker

import (
	"testing"
)

func TestCategorizeHole(t *testing.T) {
	tests := []struct {
		name     string
		cards    string
		expected HoleCategory
	}{
		// Premium hands
		{"Pocket Aces", "[As,Ah]", HolePremium},
		{"Pocket Jacks", "[Jh,Jd]", HolePremium},
		{"Ace King offsuit", "[Ac,Kh]", HolePremium},

		// Strong hands
		{"Pocket Tens", "[Tc,Th]", HoleStrong},
		{"Ace Queen suited", "[As,Qs]", HoleStrong},
		{"Ace Jack offsuit", "[Ad,Jc]", HoleStrong},

		// Medium hands
		{"Pocket Nines", "[9c,9h]", HoleMedium},
		{"Pocket Sevens", "[7h,7c]", HoleMedium},
		{"King Queen suited", "[Ks,Qs]", HoleMedium},

		// Weak hands
		{"Pocket Twos", "[2c,2h]", HoleWeak},
		{"Suited connectors 76s", "[7h,6h]", HoleWeak},
		{"Suited one-gapper 53s", "[5d,3d]", HoleWeak},

		// Trash hands
		{"Seven Two offsuit", "[7c,2h]", HoleTrash},
		{"Jack Four offsuit", "[Jh,4c]", HoleTrash},

		// Omaha holdings take the best pair
		{"Omaha with aces", "[7c,As,2h,Ad]", HolePremium},
		{"Omaha rundown", "[9h,8h,4c,2d]", HoleWeak},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cards, err := ParseCards(tt.cards)
			if err != nil {
				t.Fatalf("Failed to parse cards: %v", err)
			}
			if got := CategorizeHole(cards); got != tt.expected {
				t.Errorf("CategorizeHole(%s) = %s, want %s", tt.cards, got, tt.expected)
			}
		})
	}
}
