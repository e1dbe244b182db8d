package dataset

import "math"

// outlierColumns are the counters screened by the summary surface.
var outlierColumns = []string{"vues", "likes", "commentaires", "partages", "enregistrements"}

// OutlierCounts counts, per screened counter, the values further than three
// standard deviations from the column mean. Null cells participate in
// neither the statistics nor the counts.
func (d *Dataset) OutlierCounts() map[string]int {
	out := make(map[string]int)
	for _, col := range outlierColumns {
		vals := d.columnValues(col)
		if len(vals) < 2 {
			continue
		}
		mean, std := meanStd(vals)
		if std == 0 {
			continue
		}
		var n int
		for _, v := range vals {
			if math.Abs(v-mean) > 3*std {
				n++
			}
		}
		if n > 0 {
			out[col] = n
		}
	}
	return out
}

func (d *Dataset) columnValues(col string) []float64 {
	var vals []float64
	for i := range d.Posts {
		p := &d.Posts[i]
		var v Value
		switch col {
		case "vues":
			v = p.Vues
		case "likes":
			v = p.Likes
		case "commentaires":
			v = p.Commentaires
		case "partages":
			v = p.Partages
		case "enregistrements":
			v = p.Enregistrements
		}
		if v.Valid {
			vals = append(vals, v.F)
		}
	}
	return vals
}

// meanStd returns the mean and sample standard deviation.
func meanStd(vals []float64) (mean, std float64) {
	for _, v := range vals {
		mean += v
	}
	mean /= float64(len(vals))
	var ss float64
	for _, v := range vals {
		d := v - mean
		ss += d * d
	}
	std = math.Sqrt(ss / float64(len(vals)-1))
	return
}
