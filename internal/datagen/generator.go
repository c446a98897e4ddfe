//-------------------------------------------------------------------------
//
// pgEdge MerchLens
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package datagen

import (
	"fmt"
	"time"

	"github.com/pgEdge/pgedge-merchlens/internal/logging"
	"github.com/pgEdge/pgedge-merchlens/internal/snapshot"
)

var seasons = []string{"Q1", "Q2", "Q3", "Q4"}

// MaxWeeks is the number of weeks in one season.
const MaxWeeks = 13

// Options controls the size and shape of a generated snapshot. Zero fields
// take their DefaultOptions value.
type Options struct {
	Seed        uint64  `mapstructure:"seed"`
	SKUs        int     `mapstructure:"skus"`
	Channels    int     `mapstructure:"channels"`
	Weeks       int     `mapstructure:"weeks"`
	Competitors int     `mapstructure:"competitors"`
	Years       []int   `mapstructure:"years"`
	OrphanRate  float64 `mapstructure:"orphan_rate"`
}

// DefaultOptions returns a mid-sized two-year snapshot.
func DefaultOptions() Options {
	return Options{
		Seed:        1,
		SKUs:        60,
		Channels:    12,
		Weeks:       MaxWeeks,
		Competitors: 4,
		Years:       []int{2024, 2025},
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.SKUs <= 0 {
		o.SKUs = d.SKUs
	}
	if o.Channels <= 0 {
		o.Channels = d.Channels
	}
	if o.Weeks <= 0 {
		o.Weeks = d.Weeks
	}
	if o.Weeks > MaxWeeks {
		o.Weeks = MaxWeeks
	}
	if o.Competitors <= 0 {
		o.Competitors = d.Competitors
	}
	if len(o.Years) == 0 {
		o.Years = d.Years
	}
	return o
}

// period is one season of one year.
type period struct {
	year   int
	season string
}

type generator struct {
	f       *Faker
	o       Options
	periods []period
	seq     int
}

// Generate builds a consistent snapshot. Every SKU sells through a few
// channels in every period, with cumulative sell-through that never
// decreases within a season. A share of sales facts given by OrphanRate
// references a SKU or channel that does not exist.
func Generate(opts Options) snapshot.Tables {
	o := opts.withDefaults()
	g := &generator{
		f: NewFakerWithSeed(o.Seed),
		o: o,
	}
	for _, y := range o.Years {
		for _, s := range seasons {
			g.periods = append(g.periods, period{y, s})
		}
	}

	var t snapshot.Tables
	t.SKUs = g.skus()
	t.Channels = g.channels()
	t.Sales, t.Inventory = g.sales(t.SKUs, t.Channels)
	t.Competitors = g.competitors()
	t.CompetitorFacts = g.competitorFacts(t.Competitors)
	t.HotSKUs = g.hotSKUs(t.Competitors)
	t.WavePlans, t.WavePlanMix = g.wavePlans(t.SKUs, t.Sales)
	t.SalesPlans = g.salesPlans(t.Sales, t.Channels)

	logging.Debug().
		Uint64("seed", o.Seed).
		Int("skus", len(t.SKUs)).
		Int("sales", len(t.Sales)).
		Msg("Generated snapshot")
	return t
}

func (g *generator) skus() []snapshot.SKU {
	f := g.f
	first := g.o.Years[0]
	out := make([]snapshot.SKU, 0, g.o.SKUs)
	for i := 1; i <= g.o.SKUs; i++ {
		c := ChooseWeighted(f, categories, categoryWeights)
		sub := Choose(f, c.subs)
		id := fmt.Sprintf("S%04d", i)

		launch := f.DateRange(time.Date(first, 1, 1, 0, 0, 0, 0, time.UTC),
			time.Date(first, 12, 31, 0, 0, 0, 0, time.UTC))
		out = append(out, snapshot.SKU{
			SKUID:          id,
			SKUName:        fmt.Sprintf("%s %s%s", Choose(f, lines), sub, f.Digits(3)),
			ProductLine:    Choose(f, lines),
			CategoryID:     c.raw,
			SubCategory:    sub,
			MSRP:           f.Price(199, 1299),
			Lifecycle:      ChooseWeighted(f, lifecycles, lifeWeight),
			LaunchWave:     Choose(f, waves),
			LaunchDate:     launch.Format("2006-01-02"),
			Color:          Choose(f, colors),
			TargetAudience: Choose(f, audiences),
			SeasonYear:     first,
			Season:         seasons[(int(launch.Month())-1)/3],
		})
	}
	return out
}

func (g *generator) channels() []snapshot.Channel {
	f := g.f
	out := make([]snapshot.Channel, 0, g.o.Channels)
	for i := 1; i <= g.o.Channels; i++ {
		ch := snapshot.Channel{
			ChannelID:   fmt.Sprintf("C%02d", i),
			ChannelType: ChooseWeighted(f, channelTypes, channelWeights),
			Region:      Choose(f, regions),
		}
		if ch.ChannelType == snapshot.ChannelEcommerce {
			ch.IsOnline = true
			ch.Platform = Choose(f, platforms)
		} else {
			ch.CityTier = Choose(f, cityTiers)
			ch.StoreFormat = Choose(f, storeFormats)
		}
		out = append(out, ch)
	}
	return out
}

func (g *generator) sales(skus []snapshot.SKU, channels []snapshot.Channel) ([]snapshot.SalesFact, []snapshot.InventoryFact) {
	f := g.f
	var (
		facts []snapshot.SalesFact
		inv   []snapshot.InventoryFact
	)

	for _, sku := range skus {
		k := f.Int(1, min(3, len(channels)))
		start := f.Int(0, len(channels)-1)

		for _, p := range g.periods {
			var inbound, sold float64
			for j := 0; j < k; j++ {
				ch := channels[(start+j)%len(channels)]
				stock := float64(f.Int(80, 400))
				inbound += stock
				sold += g.weeks(&facts, sku, ch.ChannelID, p, stock)
			}

			transfer := float64(f.Int(0, 40))
			inv = append(inv, snapshot.InventoryFact{
				SKUID:      sku.SKUID,
				Period:     fmt.Sprintf("%d%s", p.year, p.season),
				SeasonYear: p.year,
				Season:     p.season,
				InboundQty: inbound,
				TransferIn: transfer,
				SalesQty:   sold,
				EOPQty:     inbound + transfer - sold,
			})
		}
	}
	return facts, inv
}

// weeks appends one season of weekly facts for a SKU and channel pair and
// returns the units sold.
func (g *generator) weeks(facts *[]snapshot.SalesFact, sku snapshot.SKU, channelID string, p period, stock float64) float64 {
	f := g.f
	var sold float64
	for w := 1; w <= g.o.Weeks; w++ {
		units := float64(f.Int(0, 30))
		if units > stock-sold {
			units = stock - sold
		}
		sold += units

		disc := round4(f.Float64(0, 0.35))
		gross := round2(units * sku.MSRP)
		net := round2(gross * (1 - disc))
		cogs := round2(units * sku.MSRP * f.Float64(0.3, 0.45))
		gp := round2(net - cogs)
		var margin float64
		if net != 0 {
			margin = round4(gp / net)
		}

		g.seq++
		fact := snapshot.SalesFact{
			RecordID:              fmt.Sprintf("R%07d", g.seq),
			SKUID:                 sku.SKUID,
			ChannelID:             channelID,
			SeasonYear:            p.year,
			Season:                p.season,
			WeekNum:               w,
			UnitSold:              units,
			OnHandUnit:            stock - sold,
			GrossSalesAmt:         gross,
			NetSalesAmt:           net,
			COGSAmt:               cogs,
			DiscountAmt:           round2(gross - net),
			GrossProfitAmt:        gp,
			DiscountRate:          disc,
			GrossMarginRate:       margin,
			CumulativeSellThrough: round4(sold / stock),
		}
		// Orphans get a key of their own so they never join and never
		// share a SKU and channel pair with real facts.
		if f.Chance(g.o.OrphanRate) {
			if f.Int(0, 1) == 0 {
				fact.SKUID = fmt.Sprintf("SX%07d", g.seq)
			} else {
				fact.ChannelID = fmt.Sprintf("CX%07d", g.seq)
			}
		}
		*facts = append(*facts, fact)
	}
	return sold
}

func (g *generator) competitors() []snapshot.CompetitorDim {
	out := make([]snapshot.CompetitorDim, 0, g.o.Competitors)
	for i := 1; i <= g.o.Competitors; i++ {
		out = append(out, snapshot.CompetitorDim{
			CompetitorID: fmt.Sprintf("K%02d", i),
			BrandName:    g.f.Company(),
			Positioning:  Choose(g.f, positionings),
		})
	}
	return out
}

func (g *generator) competitorFacts(comps []snapshot.CompetitorDim) []snapshot.CompetitorFact {
	f := g.f
	var out []snapshot.CompetitorFact
	for _, c := range comps {
		for _, p := range g.periods {
			for _, cat := range categories[:len(categories)-1] {
				if !f.Chance(0.6) {
					continue
				}
				b := Choose(f, competitorBands)
				out = append(out, snapshot.CompetitorFact{
					CompetitorID: c.CompetitorID,
					SeasonYear:   p.year,
					Season:       p.season,
					Category:     cat.raw,
					PriceBand:    b.label,
					AvgPrice:     f.Price(b.min, b.max),
					SalesAmt:     round2(f.Float64(5e4, 5e5)),
					SKUCount:     f.Int(5, 60),
				})
			}
		}
	}
	return out
}

func (g *generator) hotSKUs(comps []snapshot.CompetitorDim) []snapshot.CompetitorHotSKU {
	f := g.f
	var out []snapshot.CompetitorHotSKU
	for _, c := range comps {
		for i := 0; i < 5; i++ {
			cat := Choose(f, categories[:len(categories)-1])
			out = append(out, snapshot.CompetitorHotSKU{
				CompetitorID: c.CompetitorID,
				SKUName:      fmt.Sprintf("%s-%s", Choose(f, cat.subs), f.Digits(4)),
				Category:     cat.raw,
				Price:        f.Price(299, 1499),
				Color:        Choose(f, colors),
				SalesAmt:     round2(f.Float64(1e4, 2e5)),
			})
		}
	}
	return out
}

// wavePlans derives plans close to actuals so plan reports show both
// over and under achievement.
func (g *generator) wavePlans(skus []snapshot.SKU, facts []snapshot.SalesFact) ([]snapshot.WavePlan, []snapshot.WavePlanMix) {
	f := g.f
	wave := make(map[string]string, len(skus))
	waveSKUs := make(map[string]int)
	for _, s := range skus {
		wave[s.SKUID] = s.LaunchWave
		waveSKUs[s.LaunchWave]++
	}
	type key struct {
		p    period
		wave string
	}
	actual := make(map[key]float64)
	for _, fact := range facts {
		if w, ok := wave[fact.SKUID]; ok {
			actual[key{period{fact.SeasonYear, fact.Season}, w}] += fact.NetSalesAmt
		}
	}

	l1s := []string{"跑步", "篮球", "训练", "户外", "休闲", "儿童"}
	var (
		plans []snapshot.WavePlan
		mix   []snapshot.WavePlanMix
	)
	for _, p := range g.periods {
		for _, w := range waves {
			if waveSKUs[w] == 0 {
				continue
			}
			plans = append(plans, snapshot.WavePlan{
				SeasonYear:      p.year,
				Season:          p.season,
				Wave:            w,
				PlannedSKUCount: max(1, waveSKUs[w]+f.Int(-2, 2)),
				PlannedNewRatio: round4(f.Float64(0.2, 0.6)),
				PlannedSalesAmt: round2(actual[key{p, w}] * f.Float64(0.85, 1.2)),
			})

			start := f.Int(0, len(l1s)-1)
			weights := make([]float64, 3)
			var sum float64
			for i := range weights {
				weights[i] = f.Float64(1, 5)
				sum += weights[i]
			}
			for i, wt := range weights {
				mix = append(mix, snapshot.WavePlanMix{
					SeasonYear:   p.year,
					Season:       p.season,
					Wave:         w,
					CategoryL1:   l1s[(start+i)%len(l1s)],
					PlannedShare: round4(wt / sum),
				})
			}
		}
	}
	return plans, mix
}

func (g *generator) salesPlans(facts []snapshot.SalesFact, channels []snapshot.Channel) []snapshot.SalesPlan {
	f := g.f
	region := make(map[string]string, len(channels))
	for _, c := range channels {
		region[c.ChannelID] = c.Region
	}
	type key struct {
		p      period
		region string
	}
	actual := make(map[key]float64)
	total := make(map[period]float64)
	for _, fact := range facts {
		r, ok := region[fact.ChannelID]
		if !ok {
			continue
		}
		p := period{fact.SeasonYear, fact.Season}
		actual[key{p, r}] += fact.NetSalesAmt
		total[p] += fact.NetSalesAmt
	}

	var out []snapshot.SalesPlan
	for _, p := range g.periods {
		out = append(out, snapshot.SalesPlan{
			SeasonYear:      p.year,
			Season:          p.season,
			Region:          "all",
			PlannedSalesAmt: round2(total[p] * f.Float64(0.9, 1.15)),
		})
		// Only some regions carry their own target; the rest are allocated.
		for _, r := range regions {
			v, ok := actual[key{p, r}]
			if !ok || !f.Chance(0.5) {
				continue
			}
			out = append(out, snapshot.SalesPlan{
				SeasonYear:      p.year,
				Season:          p.season,
				Region:          r,
				PlannedSalesAmt: round2(v * f.Float64(0.85, 1.2)),
			})
		}
	}
	return out
}
