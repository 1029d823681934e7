package takeout

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// earthRadius 地球半径（米）
const earthRadius = 6371000

// ParseLocation 解析 "经度,纬度" 格式的坐标
func ParseLocation(location string) (lng, lat float64, err error) {
	parts := strings.Split(location, ",")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("无效的坐标格式: %s", location)
	}
	lng, err = strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("无效的经度: %s", parts[0])
	}
	lat, err = strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("无效的纬度: %s", parts[1])
	}
	return lng, lat, nil
}

// Haversine 计算两点之间的球面距离（米），结果取整
func Haversine(lng1, lat1, lng2, lat2 float64) int {
	dLat := (lat2 - lat1) * math.Pi / 180
	dLng := (lng2 - lng1) * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*math.Pi/180)*math.Cos(lat2*math.Pi/180)*
			math.Sin(dLng/2)*math.Sin(dLng/2)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return int(math.Round(earthRadius * c))
}

// FormatDistance 格式化距离显示
// 1000 米以内显示米，以上保留一位小数显示公里
func FormatDistance(meters int) string {
	if meters < 1000 {
		return fmt.Sprintf("%dm", meters)
	}
	return fmt.Sprintf("%.1fkm", float64(meters)/1000)
}
