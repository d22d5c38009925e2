package services

import (
	"fmt"
	"sort"
	"strings"

	"github.com/PhucLH2303/RentEase-sub000/models"
	"github.com/PhucLH2303/RentEase-sub000/utils"
)

// InsightService computes a market report over a set of post snapshots.
type InsightService struct {
	logger *utils.Logger
}

// NewInsightService creates an InsightService.
func NewInsightService(logger *utils.Logger) *InsightService {
	return &InsightService{logger: logger}
}

// Generate computes rent statistics, the most expensive post, the top
// rated apartments and a per-address distribution.
func (s *InsightService) Generate(snaps []*models.Snapshot) *models.MarketReport {
	report := &models.MarketReport{
		PostsByAddress: make(map[string]int),
	}

	if len(snaps) == 0 {
		return report
	}

	report.TotalPosts = len(snaps)

	var priced []*models.Snapshot
	var rated []*models.Snapshot

	for _, sn := range snaps {
		switch sn.Category {
		case "rental":
			report.RentalPosts++
		case "roommate":
			report.RoommatePosts++
		}
		if sn.RentPrice > 0 {
			priced = append(priced, sn)
		}
		if sn.Rating > 0 {
			rated = append(rated, sn)
		}
		if sn.Address != "" {
			report.PostsByAddress[sn.Address]++
		}
	}

	// Rent stats (only posts with a positive price)
	if len(priced) > 0 {
		report.MinRent = priced[0].RentPrice
		report.MaxRent = priced[0].RentPrice
		report.MostExpensive = priced[0]
		var total float64
		for _, sn := range priced {
			total += sn.RentPrice
			if sn.RentPrice < report.MinRent {
				report.MinRent = sn.RentPrice
			}
			if sn.RentPrice > report.MaxRent {
				report.MaxRent = sn.RentPrice
				report.MostExpensive = sn
			}
		}
		report.AverageRent = round2(total / float64(len(priced)))
		report.MinRent = round2(report.MinRent)
		report.MaxRent = round2(report.MaxRent)
	}

	// Top 5 by rating
	sort.Slice(rated, func(i, j int) bool {
		return rated[i].Rating > rated[j].Rating
	})
	if len(rated) > 5 {
		report.TopRated = rated[:5]
	} else {
		report.TopRated = rated
	}

	return report
}

// Print renders the report to the terminal.
func (s *InsightService) Print(r *models.MarketReport) {
	sep := strings.Repeat("═", 54)
	thin := strings.Repeat("─", 54)

	fmt.Printf("\n\033[1;35m%s\033[0m\n", sep)
	fmt.Printf("\033[1;35m  📊 RENTEASE MARKET REPORT\033[0m\n")
	fmt.Printf("\033[1;35m%s\033[0m\n\n", sep)

	fmt.Printf("\033[1;33m  Overview\033[0m\n")
	fmt.Printf("  %s\n", thin)
	fmt.Printf("  Total posts    : \033[1m%d\033[0m\n", r.TotalPosts)
	fmt.Printf("  Rental posts   : \033[1m%d\033[0m\n", r.RentalPosts)
	fmt.Printf("  Roommate posts : \033[1m%d\033[0m\n", r.RoommatePosts)
	fmt.Println()

	fmt.Printf("\033[1;33m  Rent Statistics (per month)\033[0m\n")
	fmt.Printf("  %s\n", thin)
	if r.AverageRent > 0 {
		fmt.Printf("  Average rent : \033[1;32m%.2f\033[0m\n", r.AverageRent)
		fmt.Printf("  Minimum rent : \033[1;32m%.2f\033[0m\n", r.MinRent)
		fmt.Printf("  Maximum rent : \033[1;32m%.2f\033[0m\n", r.MaxRent)
	} else {
		fmt.Printf("  No price data available\n")
	}
	fmt.Println()

	if r.MostExpensive != nil {
		fmt.Printf("\033[1;33m  Most Expensive Post\033[0m\n")
		fmt.Printf("  %s\n", thin)
		fmt.Printf("  %s\n", truncate(r.MostExpensive.Title, 50))
		fmt.Printf("  Address : %s\n", r.MostExpensive.Address)
		fmt.Printf("  Rent    : \033[1;31m%.2f/month\033[0m\n", r.MostExpensive.RentPrice)
		fmt.Println()
	}

	fmt.Printf("\033[1;33m  Top 5 Highest Rated\033[0m\n")
	fmt.Printf("  %s\n", thin)
	if len(r.TopRated) == 0 {
		fmt.Printf("  No rated posts found\n")
	} else {
		for i, sn := range r.TopRated {
			fmt.Printf("  \033[1m%d.\033[0m %-40s \033[1;32m%.2f ★\033[0m\n",
				i+1, truncate(sn.Title, 38), sn.Rating)
		}
	}
	fmt.Println()

	fmt.Printf("\033[1;33m  Posts by Address\033[0m\n")
	fmt.Printf("  %s\n", thin)
	if len(r.PostsByAddress) == 0 {
		fmt.Printf("  No address data\n")
	} else {
		type addrCount struct {
			addr  string
			count int
		}
		var addrs []addrCount
		for addr, cnt := range r.PostsByAddress {
			addrs = append(addrs, addrCount{addr, cnt})
		}
		sort.Slice(addrs, func(i, j int) bool {
			return addrs[i].count > addrs[j].count
		})
		for _, ac := range addrs {
			bar := strings.Repeat("█", ac.count)
			fmt.Printf("  %-30s %s (%d)\n", truncate(ac.addr, 28), bar, ac.count)
		}
	}

	fmt.Printf("\n\033[1;35m%s\033[0m\n\n", sep)
}

func round2(f float64) float64 {
	return float64(int(f*100+0.5)) / 100
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
