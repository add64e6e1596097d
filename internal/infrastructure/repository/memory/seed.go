package memory

import (
	"github.com/riskibarqy/transfer-market/internal/domain/club"
	"github.com/riskibarqy/transfer-market/internal/domain/exchange"
	"github.com/riskibarqy/transfer-market/internal/domain/player"
)

const (
	ClubIDAtleticoNorte int64 = 1
	ClubIDRealSur       int64 = 2
	ClubIDDeportivoEste int64 = 3
	ClubIDUnionOeste    int64 = 4

	DirectionIDNone          int64 = 1
	DirectionIDRequesterPays int64 = 2
	DirectionIDReceiverPays  int64 = 3
)

// SeedClubs manager IDs match the demo users of the local auth provider.
func SeedClubs() []club.Club {
	return []club.Club{
		{ID: ClubIDAtleticoNorte, Name: "Atletico Norte", ShortName: "ATN", ManagerUserID: "demo-manager-1", Budget: 150_000_000},
		{ID: ClubIDRealSur, Name: "Real Sur", ShortName: "RSU", ManagerUserID: "demo-manager-2", Budget: 120_000_000},
		{ID: ClubIDDeportivoEste, Name: "Deportivo Este", ShortName: "DES", ManagerUserID: "demo-manager-3", Budget: 80_000_000},
		{ID: ClubIDUnionOeste, Name: "Union Oeste", ShortName: "UOE", Budget: 60_000_000},
	}
}

func SeedCompensationDirections() []exchange.CompensationDirection {
	return []exchange.CompensationDirection{
		{ID: DirectionIDNone, Name: "No compensation", Kind: exchange.DirectionNone},
		{ID: DirectionIDRequesterPays, Name: "Requesting club pays", Kind: exchange.DirectionRequesterPays},
		{ID: DirectionIDReceiverPays, Name: "Receiving club pays", Kind: exchange.DirectionReceiverPays},
	}
}

func SeedPlayers() []player.Player {
	return []player.Player{
		seedPlayer(101, "Iker Almendros", player.PositionGoalkeeper, 29, 82, 1, player.FootRight, ClubIDAtleticoNorte, 18_000_000, player.Attributes{Pace: 50, Shooting: 20, Passing: 62, Dribbling: 40, Defending: 35, Physical: 74}),
		seedPlayer(102, "Mateo Ibáñez", player.PositionDefender, 24, 86, 2, player.FootLeft, ClubIDAtleticoNorte, 42_000_000, player.Attributes{Pace: 80, Shooting: 45, Passing: 74, Dribbling: 70, Defending: 87, Physical: 82}),
		seedPlayer(103, "Joaquín Peña", player.PositionMidfielder, 27, 84, 1, player.FootRight, ClubIDAtleticoNorte, 35_000_000, player.Attributes{Pace: 72, Shooting: 76, Passing: 88, Dribbling: 83, Defending: 60, Physical: 70}),
		seedPlayer(104, "Óscar Valdés", player.PositionForward, 33, 83, 3, player.FootBoth, ClubIDAtleticoNorte, 12_000_000, player.Attributes{Pace: 70, Shooting: 87, Passing: 74, Dribbling: 79, Defending: 30, Physical: 76}),

		seedPlayer(201, "Santiago Ruíz", player.PositionGoalkeeper, 22, 78, 3, player.FootRight, ClubIDRealSur, 9_000_000, player.Attributes{Pace: 55, Shooting: 18, Passing: 58, Dribbling: 35, Defending: 30, Physical: 70}),
		seedPlayer(202, "Lucas Moreira", player.PositionDefender, 31, 81, 4, player.FootRight, ClubIDRealSur, 14_000_000, player.Attributes{Pace: 66, Shooting: 40, Passing: 68, Dribbling: 60, Defending: 84, Physical: 85}),
		seedPlayer(203, "Andrés Quintero", player.PositionMidfielder, 23, 88, 3, player.FootLeft, ClubIDRealSur, 60_000_000, player.Attributes{Pace: 83, Shooting: 80, Passing: 89, Dribbling: 90, Defending: 52, Physical: 68}),
		seedPlayer(204, "Thiago Brandão", player.PositionForward, 26, 85, 4, player.FootRight, ClubIDRealSur, 48_000_000, player.Attributes{Pace: 91, Shooting: 86, Passing: 72, Dribbling: 87, Defending: 28, Physical: 74}),

		seedPlayer(301, "Hugo Lefèvre", player.PositionDefender, 28, 79, 5, player.FootLeft, ClubIDDeportivoEste, 11_000_000, player.Attributes{Pace: 74, Shooting: 38, Passing: 66, Dribbling: 62, Defending: 81, Physical: 79}),
		seedPlayer(302, "Nicolás Ferreyra", player.PositionMidfielder, 34, 80, 2, player.FootRight, ClubIDDeportivoEste, 6_000_000, player.Attributes{Pace: 58, Shooting: 70, Passing: 84, Dribbling: 75, Defending: 66, Physical: 64}),
		seedPlayer(303, "Julián Castaño", player.PositionForward, 21, 77, 3, player.FootLeft, ClubIDDeportivoEste, 10_000_000, player.Attributes{Pace: 88, Shooting: 75, Passing: 63, Dribbling: 80, Defending: 25, Physical: 62}),

		seedPlayer(401, "Raúl Domínguez", player.PositionMidfielder, 30, 76, 1, player.FootRight, ClubIDUnionOeste, 7_500_000, player.Attributes{Pace: 65, Shooting: 66, Passing: 77, Dribbling: 72, Defending: 64, Physical: 71}),
		seedPlayer(402, "Émile Garnier", player.PositionDefender, 25, 80, 5, player.FootRight, ClubIDUnionOeste, 16_000_000, player.Attributes{Pace: 77, Shooting: 35, Passing: 64, Dribbling: 58, Defending: 82, Physical: 80}),

		seedPlayer(501, "Diego Araújo", player.PositionForward, 27, 81, 4, player.FootRight, 0, 20_000_000, player.Attributes{Pace: 84, Shooting: 82, Passing: 68, Dribbling: 80, Defending: 30, Physical: 72}),
		seedPlayer(502, "Pablo Sáenz", player.PositionGoalkeeper, 35, 74, 1, player.FootLeft, 0, 2_000_000, player.Attributes{Pace: 40, Shooting: 15, Passing: 55, Dribbling: 30, Defending: 28, Physical: 66}),
		seedPlayer(503, "Kevin Ocampo", player.PositionMidfielder, 20, 72, 3, player.FootBoth, 0, 4_000_000, player.Attributes{Pace: 78, Shooting: 60, Passing: 70, Dribbling: 74, Defending: 50, Physical: 58}),
	}
}

// seedPlayer derives release price and wage from the sale price the way the
// store's valuation view does.
func seedPlayer(id int64, name string, pos player.Position, age, rating int, countryID int64, foot player.Foot, clubID, salePrice int64, attrs player.Attributes) player.Player {
	return player.Player{
		ID:            id,
		Name:          name,
		Position:      pos,
		Age:           age,
		Rating:        rating,
		Attributes:    attrs,
		CountryID:     countryID,
		PreferredFoot: foot,
		ClubID:        clubID,
		Valuation: player.Valuation{
			SalePrice:    salePrice,
			ReleasePrice: salePrice / 2,
			Wage:         salePrice / 100,
		},
	}
}
